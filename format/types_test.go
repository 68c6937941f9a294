package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionType(t *testing.T) {
	tests := []struct {
		typ   CompressionType
		name  string
		valid bool
	}{
		{CompressionNone, "None", true},
		{CompressionZstd, "Zstd", true},
		{CompressionS2, "S2", true},
		{CompressionLZ4, "LZ4", true},
		{0, "Unknown", false},
		{0x5, "Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.typ.String())
			require.Equal(t, tt.valid, tt.typ.IsValid())
		})
	}
}

func TestColumnKind(t *testing.T) {
	require.Equal(t, "Fixed", ColumnFixed.String())
	require.Equal(t, "Var", ColumnVar.String())
	require.Equal(t, "Unknown", ColumnKind(0).String())
}
