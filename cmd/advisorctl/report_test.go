package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCache struct {
	data     map[string][]byte
	SetCalls int
}

func (s *stubCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubCache) Set(_ context.Context, key string, value []byte) error {
	s.SetCalls++
	s.data[key] = value
	return nil
}

func TestRefreshCache(t *testing.T) {
	t.Parallel()

	inner := &stubCache{data: map[string][]byte{"k": []byte("cached")}}
	c := refreshCache{ResultCache: inner}
	ctx := context.Background()

	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)

	require.NoError(t, c.Set(ctx, "k", []byte("fresh")))
	assert.Equal(t, 1, inner.SetCalls)
	assert.Equal(t, "fresh", string(inner.data["k"]))
}

func TestWriteXMLDump(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path := filepath.Join(dir, "report.xml")
	require.NoError(t, writeXMLDump(path, "<content>ok</content>"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<content>ok</content>", string(data))

	empty := filepath.Join(dir, "empty.xml")
	assert.Error(t, writeXMLDump(empty, ""))
	_, err = os.Stat(empty)
	assert.True(t, os.IsNotExist(err))
}
