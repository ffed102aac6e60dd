package firestore

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// ローカル実行時に探すサービスアカウント鍵のデフォルトパス
const defaultCredentialsFile = "voicenav-firestore-key.json"

type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient ルート保存用のFirestoreクライアントを初期化する。
// Cloud Run上ではデフォルト認証、ローカルでは鍵ファイルがあればそれを使う
func NewFirestoreClient(ctx context.Context, projectID string) (*FirestoreClient, error) {
	client, err := firestore.NewClient(ctx, projectID, clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("Firestoreクライアントの作成に失敗: %w", err)
	}
	log.Printf("✅ Firestore接続完了 (project: %s)", projectID)
	return &FirestoreClient{client: client}, nil
}

// clientOptions 実行環境に応じた認証オプションを返す
func clientOptions() []option.ClientOption {
	if os.Getenv("K_SERVICE") != "" {
		// Cloud Run上ではサービスアカウントのデフォルト認証に任せる
		log.Printf("☁️ Cloud Run環境: デフォルト認証を使用します")
		return nil
	}

	credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsFile == "" {
		credentialsFile = defaultCredentialsFile
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		log.Printf("⚠️ 認証鍵ファイルが見つかりません (%s)。デフォルト認証を試します", credentialsFile)
		return nil
	}

	log.Printf("📄 認証鍵ファイルを使用: %s", credentialsFile)
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
