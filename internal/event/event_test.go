package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  Type
	}{
		{want: "ScanComplete", typ: ScanComplete},
		{want: "PassStarted", typ: PassStarted},
		{want: "FileStarted", typ: FileStarted},
		{want: "FileCopied", typ: FileCopied},
		{want: "FileExisted", typ: FileExisted},
		{want: "FileFailed", typ: FileFailed},
		{want: "PassComplete", typ: PassComplete},
		{want: "PassCancelled", typ: PassCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeStringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", Type(999).String())
	assert.Equal(t, "Unknown", Type(0).String())
}

func TestEventZeroValue(t *testing.T) {
	var e Event
	assert.Equal(t, Type(0), e.Type)
	assert.True(t, e.Timestamp.IsZero())
	assert.Empty(t, e.Src)
	assert.Empty(t, e.Dst)
	assert.Zero(t, e.Size)
	assert.Zero(t, e.Total)
	require.NoError(t, e.Error)
}

func TestEventFields(t *testing.T) {
	now := time.Now()
	e := Event{
		Type:      FileCopied,
		Timestamp: now,
		Src:       "dir/a.jpg",
		Dst:       "2023/06 Juni/a.jpg",
		Size:      1024,
		Pass:      2,
	}
	assert.Equal(t, FileCopied, e.Type)
	assert.Equal(t, now, e.Timestamp)
	assert.Equal(t, "dir/a.jpg", e.Src)
	assert.Equal(t, "2023/06 Juni/a.jpg", e.Dst)
	assert.Equal(t, int64(1024), e.Size)
	assert.Equal(t, 2, e.Pass)
}

func TestIsFileOutcome(t *testing.T) {
	assert.True(t, Event{Type: FileCopied}.IsFileOutcome())
	assert.True(t, Event{Type: FileExisted}.IsFileOutcome())
	assert.True(t, Event{Type: FileFailed}.IsFileOutcome())
	assert.False(t, Event{Type: FileStarted}.IsFileOutcome())
	assert.False(t, Event{Type: PassComplete}.IsFileOutcome())
}
