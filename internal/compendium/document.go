package compendium

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/klauspost/compress/zip"

	"compendia/internal/candidates"
)

// XMLName is the member holding the compendium records inside an archive.
const XMLName = "compendium.xml"

var (
	// ErrUnsupportedFormat reports a compendium path that is not .xml,
	// .compendium or .zip.
	ErrUnsupportedFormat = errors.New("unsupported compendium format")
	// ErrMissingCompendiumXML reports an archive without compendium.xml.
	ErrMissingCompendiumXML = errors.New("archive does not contain compendium.xml")
	// ErrNoRootElement reports an XML document without a root element.
	ErrNoRootElement = errors.New("compendium has no root element")
)

// Kind is the element type of a compendium entry.
type Kind string

const (
	KindMonster Kind = "monster"
	KindItem    Kind = "item"
)

// Folder is the archive directory media for this kind is stored under.
func (k Kind) Folder() string {
	switch k {
	case KindMonster:
		return "monsters"
	case KindItem:
		return "items"
	default:
		return string(k)
	}
}

// Supports reports whether entries of this kind accept a reference for role.
// Items only carry a full image.
func (k Kind) Supports(role candidates.Role) bool {
	switch role {
	case candidates.RoleImage:
		return k == KindMonster || k == KindItem
	case candidates.RoleToken:
		return k == KindMonster
	default:
		return false
	}
}

// Entry is one monster or item record.
type Entry struct {
	// Index is the position of the entry among all monsters and items.
	Index int
	Name  string
	Kind  Kind

	node *xmlquery.Node
}

// Reference returns the current <image> or <token> value.
func (e *Entry) Reference(role candidates.Role) (string, bool) {
	child := childElement(e.node, string(role))
	if child == nil {
		return "", false
	}
	ref := strings.TrimSpace(child.InnerText())
	return ref, ref != ""
}

// Document is a loaded compendium. It is owned by one run at a time.
type Document struct {
	source   string
	archived bool
	tree     *xmlquery.Node
	entries  []*Entry
	// members are archive member names carried over from the source.
	members []string
	assets  map[string]string
	taken   map[string]struct{}
	bound   map[string]string
}

// Load reads a compendium from path. No partial document is returned on
// failure.
func Load(path string) (*Document, error) {
	doc := &Document{
		source: path,
		assets: make(map[string]string),
		taken:  make(map[string]struct{}),
		bound:  make(map[string]string),
	}

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read compendium: %w", err)
		}
		data = raw
	case ".compendium", ".zip":
		raw, members, err := readArchive(path)
		if err != nil {
			return nil, err
		}
		data = raw
		doc.archived = true
		doc.members = members
		for _, name := range members {
			doc.taken[name] = struct{}{}
		}
	default:
		return nil, fmt.Errorf("%w: %q (expected .xml, .compendium or .zip)", ErrUnsupportedFormat, ext)
	}

	tree, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", XMLName, err)
	}
	root := firstElement(tree)
	if root == nil {
		return nil, ErrNoRootElement
	}
	doc.tree = tree
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		kind := Kind(child.Data)
		if kind != KindMonster && kind != KindItem {
			continue
		}
		name := ""
		if n := childElement(child, "name"); n != nil {
			name = strings.TrimSpace(n.InnerText())
		}
		doc.entries = append(doc.entries, &Entry{
			Index: len(doc.entries),
			Name:  name,
			Kind:  kind,
			node:  child,
		})
	}
	return doc, nil
}

func readArchive(path string) ([]byte, []string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	var (
		data    []byte
		found   bool
		members []string
	)
	for _, f := range reader.File {
		if f.Name != XMLName {
			members = append(members, f.Name)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", XMLName, err)
		}
		data, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", XMLName, err)
		}
		found = true
	}
	if !found {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrMissingCompendiumXML)
	}
	return data, members, nil
}

// Source is the path the document was loaded from.
func (d *Document) Source() string { return d.source }

// Archived reports whether the source was a zip archive.
func (d *Document) Archived() bool { return d.archived }

// Entries returns the monsters and items in document order.
func (d *Document) Entries() []*Entry {
	return append([]*Entry(nil), d.entries...)
}

// Members returns the archive members carried over from the source.
func (d *Document) Members() []string {
	return append([]string(nil), d.members...)
}

// XML renders the current record tree, preserving whitespace and comments.
func (d *Document) XML() string {
	return d.tree.OutputXMLWithOptions(xmlquery.WithOutputSelf(), xmlquery.WithPreserveSpace())
}

func firstElement(n *xmlquery.Node) *xmlquery.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

func childElement(n *xmlquery.Node, name string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == name {
			return child
		}
	}
	return nil
}
