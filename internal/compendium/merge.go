package compendium

import (
	"errors"
	"fmt"
	"path"

	"github.com/antchfx/xmlquery"

	"compendia/internal/candidates"
	"compendia/internal/textutil"
)

// ErrUnsupportedRole reports a role the entry kind cannot carry, such as a
// token on an item.
var ErrUnsupportedRole = errors.New("role not supported for entry kind")

// Merger writes image and token references into a document.
type Merger struct {
	doc *Document
}

// NewMerger returns a merger bound to doc.
func NewMerger(doc *Document) *Merger {
	return &Merger{doc: doc}
}

// Apply binds file to entry for role. It reserves an archive name for the
// file under the entry kind's folder, then writes or replaces exactly the
// <image> or <token> child of the entry. Applying the same file to the same
// entry again reuses the reserved name and leaves the document unchanged.
// The reference written is returned.
func (m *Merger) Apply(entry *Entry, role candidates.Role, file candidates.File) (string, error) {
	if entry == nil || entry.node == nil {
		return "", errors.New("apply: entry is not part of a document")
	}
	if !entry.Kind.Supports(role) {
		return "", fmt.Errorf("%s on %s %q: %w", role, entry.Kind, entry.Name, ErrUnsupportedRole)
	}
	asset, err := m.doc.reserveAsset(entry.Kind.Folder(), file)
	if err != nil {
		return "", err
	}
	ref := path.Base(asset)
	setChildText(entry.node, string(role), ref)
	return ref, nil
}

// Asset is a file to be embedded in the saved archive.
type Asset struct {
	// Name is the archive member name, e.g. "monsters/goblin.png".
	Name string
	// Source is the file on disk.
	Source string
}

// Assets returns the reserved files ordered by archive name.
func (d *Document) Assets() []Asset {
	assets := make([]Asset, 0, len(d.assets))
	for name, src := range d.assets {
		assets = append(assets, Asset{Name: name, Source: src})
	}
	sortAssets(assets)
	return assets
}

func (d *Document) reserveAsset(folder string, file candidates.File) (string, error) {
	key := folder + "\x00" + file.Path
	if name, ok := d.bound[key]; ok {
		return name, nil
	}
	var name string
	for n := 1; ; n++ {
		base := textutil.AssetName(file.Name, n)
		if base == "" {
			return "", fmt.Errorf("reserve asset: no usable file name for %q", file.Path)
		}
		name = folder + "/" + base
		if !d.isTaken(name) {
			break
		}
	}
	d.taken[name] = struct{}{}
	d.assets[name] = file.Path
	d.bound[key] = name
	return name, nil
}

func (d *Document) isTaken(name string) bool {
	if name == XMLName {
		return true
	}
	_, ok := d.taken[name]
	return ok
}

// setChildText replaces the content of parent's first <name> child with
// text, appending the child when it does not exist yet.
func setChildText(parent *xmlquery.Node, name, text string) {
	child := childElement(parent, name)
	if child == nil {
		child = &xmlquery.Node{Type: xmlquery.ElementNode, Data: name}
		xmlquery.AddChild(parent, child)
	}
	for c := child.FirstChild; c != nil; {
		next := c.NextSibling
		xmlquery.RemoveFromTree(c)
		c = next
	}
	xmlquery.AddChild(child, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
}
