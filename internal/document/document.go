package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/orgchart/internal/domain"
)

// DataKey is the storage key the serialized chart is persisted under.
const DataKey = "data"

// ErrInvalidDocument is returned when a document cannot be decoded or does
// not describe a valid chart.
var ErrInvalidDocument = errors.New("invalid document")

// Document is the persisted form of a chart. Ministries are those of the
// top-level group; Groups are the remaining root groups in order.
type Document struct {
	Ministries []Ministry `json:"ministries"`
	Groups     []Group    `json:"groups"`
}

type Ministry struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
}

// Group omits Ministries and Groups when empty; absence means none.
type Group struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags"`
	Ministries  []Ministry `json:"ministries,omitempty"`
	Groups      []Group    `json:"groups,omitempty"`
}

// Serializer converts a tree into its Document. It only reads the tree.
type Serializer struct {
	logger *slog.Logger
}

func NewSerializer(logger *slog.Logger) *Serializer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Serializer{logger: logger}
}

// Serialize walks the live tree in document order. The deletion sink is not
// part of the document.
func (s *Serializer) Serialize(t *domain.Tree) Document {
	doc := Document{Ministries: []Ministry{}, Groups: []Group{}}
	for _, n := range t.Root().Groups {
		switch {
		case n.Kind != domain.KindGroup:
			s.logger.Debug("serialize_skip", "node", n.Label())
		case n.TopLevel:
			doc.Ministries = ministries(n.Ministries)
		default:
			doc.Groups = append(doc.Groups, group(n))
		}
	}
	return doc
}

// Marshal serializes t to JSON, indented when pretty is set.
func (s *Serializer) Marshal(t *domain.Tree, pretty bool) ([]byte, error) {
	doc := s.Serialize(t)
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func ministries(nodes []*domain.Node) []Ministry {
	out := make([]Ministry, 0, len(nodes))
	for _, m := range nodes {
		out = append(out, Ministry{
			Name:        m.Name,
			Description: m.Description,
			Tags:        tags(m.Tags),
		})
	}
	return out
}

func group(n *domain.Node) Group {
	g := Group{
		Name:        n.Name,
		Description: n.Description,
		Tags:        tags(n.Tags),
	}
	if len(n.Ministries) > 0 {
		g.Ministries = ministries(n.Ministries)
	}
	for _, sub := range n.Subgroups {
		g.Groups = append(g.Groups, group(sub))
	}
	return g
}

func tags(nodes []*domain.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, t := range nodes {
		out = append(out, t.Name)
	}
	return out
}

// Decode parses a persisted document. Unknown fields are rejected.
func Decode(data []byte) (Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Ministries == nil {
		doc.Ministries = []Ministry{}
	}
	if doc.Groups == nil {
		doc.Groups = []Group{}
	}
	return doc, nil
}
