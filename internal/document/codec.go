package document

import (
	"encoding/json"
	"fmt"
	"io"
)

// typeTag reads only the discriminator of an encoded element.
type typeTag struct {
	Type string `json:"type"`
}

// MarshalElement encodes e as a JSON object with a "type" discriminator.
func MarshalElement(e Element) ([]byte, error) {
	switch v := e.(type) {
	case *FrameElement:
		return json.Marshal(struct {
			Type string `json:"type"`
			*FrameElement
		}{KindFrame.String(), v})
	case *TextElement:
		return json.Marshal(struct {
			Type string `json:"type"`
			*TextElement
		}{KindText.String(), v})
	case *ImageElement:
		return json.Marshal(struct {
			Type string `json:"type"`
			*ImageElement
		}{KindImage.String(), v})
	case *ShapeElement:
		return json.Marshal(struct {
			Type string `json:"type"`
			*ShapeElement
		}{KindShape.String(), v})
	case *GroupElement:
		return json.Marshal(struct {
			Type string `json:"type"`
			*GroupElement
		}{KindGroup.String(), v})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownElementType, e)
	}
}

// UnmarshalElement decodes an element produced by MarshalElement.
func UnmarshalElement(data []byte) (Element, error) {
	var tag typeTag
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}

	var e Element
	switch tag.Type {
	case "frame":
		e = &FrameElement{}
	case "text":
		e = &TextElement{}
	case "image":
		e = &ImageElement{}
	case "shape":
		e = &ShapeElement{}
	case "group":
		e = &GroupElement{}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownElementType, tag.Type)
	}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("decode %s element: %w", tag.Type, err)
	}
	return e, nil
}

// MarshalJSON implements json.Marshaler.
func (es Elements) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(es))
	for _, e := range es {
		if e == nil {
			continue
		}
		data, err := MarshalElement(e)
		if err != nil {
			return nil, err
		}
		raw = append(raw, data)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (es *Elements) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Elements, 0, len(raw))
	for _, r := range raw {
		e, err := UnmarshalElement(r)
		if err != nil {
			return err
		}
		out = append(out, e)
	}
	*es = out
	return nil
}

type pageJSON struct {
	ID       PageID       `json:"id"`
	Metadata PageMetadata `json:"metadata"`
	Size     PageSize     `json:"size"`
	Elements Elements     `json:"elements"`
}

// MarshalJSON implements json.Marshaler.
func (p *Page) MarshalJSON() ([]byte, error) {
	return json.Marshal(pageJSON{
		ID:       p.ID,
		Metadata: p.Metadata,
		Size:     p.Size,
		Elements: Elements(p.elements),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Page) UnmarshalJSON(data []byte) error {
	var pj pageJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	p.ID = pj.ID
	p.Metadata = pj.Metadata
	p.Size = pj.Size
	if p.Size.Width == 0 || p.Size.Height == 0 {
		p.Size = PageA4
	}
	p.elements = []Element(pj.Elements)
	return nil
}

// ReadDocument decodes a JSON document.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if len(doc.Pages) == 0 {
		return nil, ErrEmptyDocument
	}
	return &doc, nil
}

// WriteDocument encodes doc as indented JSON.
func WriteDocument(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}
