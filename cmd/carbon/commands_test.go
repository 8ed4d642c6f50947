package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eq99/carbon"
	"github.com/eq99/carbon/internal/objstore"
)

func TestMakeApply(t *testing.T) {
	before := "a\nb\nc\nd\ne\nf\ng\n"
	after := "a\nb\nx\ny\nz\nd\ne\nf\ng\n"

	var patch, info bytes.Buffer
	require.NoError(t, makePatch(strings.NewReader(before), strings.NewReader(after), &patch, &info, nil, nil))
	assert.Equal(t, "\x002,1,3\nc\nx\ny\nz\n", patch.String())
	assert.Empty(t, info.String())

	var out bytes.Buffer
	require.NoError(t, applyPatch(strings.NewReader(before), bytes.NewReader(patch.Bytes()), &out, true))
	assert.Equal(t, after, out.String())
}

func TestMakeEmpty(t *testing.T) {
	var patch, info bytes.Buffer
	err := makePatch(strings.NewReader(""), strings.NewReader(""), &patch, &info, nil, nil)
	assert.ErrorIs(t, err, carbon.ErrEmptyInput)

	err = makePatch(strings.NewReader(""), strings.NewReader(""), &patch, &info, nil, []carbon.FuncOption{carbon.WithEmptyPatch()})
	require.NoError(t, err)
	assert.Empty(t, patch.String())
}

func TestMakeStore(t *testing.T) {
	store := objstore.New(afero.NewMemMapFs(), "/store")

	var patch, info bytes.Buffer
	require.NoError(t, makePatch(strings.NewReader("a\n"), strings.NewReader("b\n"), &patch, &info, store, nil))

	docHash := objstore.Hash([]byte("b\n"))
	patchHash := objstore.Hash(patch.Bytes())
	assert.Equal(t, "after "+docHash+"\npatch "+patchHash+"\n", info.String())

	var out bytes.Buffer
	require.NoError(t, getObject(patchHash, &out, store))
	assert.Equal(t, patch.String(), out.String())
}

func TestApplyVerify(t *testing.T) {
	patch := "\x001,1,1\nb\nB\n"

	var out bytes.Buffer
	require.NoError(t, applyPatch(strings.NewReader("a\nq\nc\n"), strings.NewReader(patch), &out, false))
	assert.Equal(t, "a\nB\nc\n", out.String())

	out.Reset()
	err := applyPatch(strings.NewReader("a\nq\nc\n"), strings.NewReader(patch), &out, true)
	assert.ErrorIs(t, err, carbon.ErrPatchApply)
	assert.Empty(t, out.String())
}

func TestShowAndInspect(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, showDocument(strings.NewReader("A\nB\n"), &out))
	assert.Equal(t, "0. A\n1. B\n", out.String())

	out.Reset()
	require.NoError(t, inspectPatch(strings.NewReader("\x000,1,1\nA\nZ\n"), &out, false))
	assert.Equal(t, "@@ -1,1 +1,1 @@\n-A\n+Z\n", out.String())

	out.Reset()
	assert.ErrorIs(t, inspectPatch(strings.NewReader("\x00x\n"), &out, false), carbon.ErrPatchParse)
}

func TestPutGet(t *testing.T) {
	store := objstore.New(afero.NewMemMapFs(), "/store")

	var out bytes.Buffer
	require.NoError(t, putObject(strings.NewReader("hello\n"), &out, store))
	hash := strings.TrimSpace(out.String())
	assert.Equal(t, objstore.Hash([]byte("hello\n")), hash)

	out.Reset()
	require.NoError(t, getObject(hash, &out, store))
	assert.Equal(t, "hello\n", out.String())

	assert.ErrorIs(t, getObject(objstore.Hash([]byte("nope")), &out, store), objstore.ErrNotFound)
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer

	c, err := useColor("always", &buf)
	require.NoError(t, err)
	assert.True(t, c)

	c, err = useColor("never", &buf)
	require.NoError(t, err)
	assert.False(t, c)

	c, err = useColor("auto", &buf)
	require.NoError(t, err)
	assert.False(t, c)

	_, err = useColor("rainbow", &buf)
	assert.Error(t, err)
}
