package contenthash

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fields is a minimal Hashable used to exercise the encoders.
type fields struct {
	parts []string
}

func (f fields) HashInto(w io.Writer) {
	WriteUint64(w, uint64(len(f.parts)))
	for _, p := range f.parts {
		WriteString(w, p)
	}
}

func TestSum_Deterministic(t *testing.T) {
	a := fields{parts: []string{"left", "base", "right"}}
	b := fields{parts: []string{"left", "base", "right"}}

	require.Len(t, Sum(a), Size)
	assert.Equal(t, Sum(a), Sum(b))
	assert.Equal(t, HexSum(a), HexSum(b))
	assert.Len(t, HexSum(a), 2*Size)
}

func TestSum_DistinguishesContent(t *testing.T) {
	tests := []struct {
		name string
		a, b fields
	}{
		{
			name: "different values",
			a:    fields{parts: []string{"left"}},
			b:    fields{parts: []string{"right"}},
		},
		{
			name: "different order",
			a:    fields{parts: []string{"left", "right"}},
			b:    fields{parts: []string{"right", "left"}},
		},
		{
			name: "length prefix prevents field bleed",
			a:    fields{parts: []string{"ab", "c"}},
			b:    fields{parts: []string{"a", "bc"}},
		},
		{
			name: "empty versus missing field",
			a:    fields{parts: []string{"left", ""}},
			b:    fields{parts: []string{"left"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, Sum(tt.a), Sum(tt.b))
		})
	}
}

func TestWriteByte(t *testing.T) {
	h := New()
	WriteByte(h, 0)
	unlabeledTag := h.Sum(nil)

	h = New()
	WriteByte(h, 1)
	labeledTag := h.Sum(nil)

	assert.NotEqual(t, unlabeledTag, labeledTag)
}
