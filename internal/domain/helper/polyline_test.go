package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VoiceNav-App/internal/domain/model"
)

func TestDecodePolyline_EmptyString(t *testing.T) {
	assert.Empty(t, DecodePolyline(""))
}

func TestDecodePolyline_ReferenceString(t *testing.T) {
	// Google Maps公式ドキュメントのサンプル文字列
	path := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.Len(t, path, 3)

	expected := []model.LatLng{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	}
	for i, want := range expected {
		assert.InDelta(t, want.Lat, path[i].Lat, 1e-4)
		assert.InDelta(t, want.Lng, path[i].Lng, 1e-4)
	}
}

func TestEncodePolyline_RoundTrip(t *testing.T) {
	original := []model.LatLng{
		{Lat: 35.0116, Lng: 135.7681},
		{Lat: 35.0212, Lng: 135.7556},
		{Lat: 34.9858, Lng: 135.7588},
	}

	decoded := DecodePolyline(EncodePolyline(original))
	require.Len(t, decoded, len(original))
	for i, want := range original {
		assert.InDelta(t, want.Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, want.Lng, decoded[i].Lng, 1e-5)
	}
}

func TestDecodePolyline_TruncatedInput(t *testing.T) {
	// 途中で切れた入力でもpanicせず、デコードできた分だけ返す
	full := "_p~iF~ps|U_ulLnnqC"
	path := DecodePolyline(full[:len(full)-3])

	require.NotEmpty(t, path)
	assert.InDelta(t, 38.5, path[0].Lat, 1e-4)
	assert.InDelta(t, -120.2, path[0].Lng, 1e-4)
}
