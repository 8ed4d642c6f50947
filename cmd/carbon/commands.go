package main

import (
	"fmt"
	"io"

	"github.com/eq99/carbon"
	"github.com/eq99/carbon/internal/document"
	"github.com/eq99/carbon/internal/objstore"
	"github.com/eq99/carbon/internal/render"
)

// makePatch writes the patch from before to after to out. If store is non-nil, the after
// document and the patch are stored too and their hashes reported on info.
func makePatch(before, after io.Reader, out, info io.Writer, store *objstore.Store, opts []carbon.FuncOption) error {
	oldDoc, err := document.Read(before)
	if err != nil {
		return err
	}
	newDoc, err := document.Read(after)
	if err != nil {
		return err
	}

	p, err := carbon.DiffLines(oldDoc.Lines, newDoc.Lines, opts...)
	if err != nil {
		return err
	}
	text, err := p.MarshalText()
	if err != nil {
		return err
	}

	if store != nil {
		docHash, err := store.Put(newDoc.Bytes())
		if err != nil {
			return err
		}
		patchHash, err := store.Put(text)
		if err != nil {
			return err
		}
		fmt.Fprintf(info, "after %s\npatch %s\n", docHash, patchHash)
	}

	_, err = out.Write(text)
	return err
}

func applyPatch(before, patch io.Reader, out io.Writer, verify bool) error {
	oldDoc, err := document.Read(before)
	if err != nil {
		return err
	}
	p, err := carbon.ParsePatch(patch)
	if err != nil {
		return err
	}
	if verify {
		if err := p.Verify(oldDoc.Lines); err != nil {
			return err
		}
	}

	lines, err := carbon.Apply(oldDoc.Lines, p)
	if err != nil {
		return err
	}

	_, err = out.Write((&document.Document{Lines: lines}).Bytes())
	return err
}

func showDocument(r io.Reader, out io.Writer) error {
	doc, err := document.Read(r)
	if err != nil {
		return err
	}
	return doc.Show(out)
}

func inspectPatch(patch io.Reader, out io.Writer, color bool) error {
	p, err := carbon.ParsePatch(patch)
	if err != nil {
		return err
	}
	return render.Patch(out, p, color)
}

func putObject(r io.Reader, out io.Writer, store *objstore.Store) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	hash, err := store.Put(b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

func getObject(hash string, out io.Writer, store *objstore.Store) error {
	b, err := store.Get(hash)
	if err != nil {
		return err
	}
	_, err = out.Write(b)
	return err
}
