package models

import "encoding/json"

type ContentKind int

const (
	ContentAbsent ContentKind = iota
	ContentText
	ContentParts
	ContentOther
)

// Content is a message body as it appeared on the wire: a plain string, a
// list of typed parts, or some other JSON value kept raw.
type Content struct {
	Kind  ContentKind
	Text  string
	Parts []ContentPart
	Raw   json.RawMessage
}

// ContentPart is implemented by TextPart, ToolUsePart and OtherPart only.
type ContentPart interface {
	contentPart()
}

type TextPart struct {
	Text string
}

type ToolUsePart struct {
	ID    string
	Name  string
	Named bool
}

// OtherPart holds any part that is neither text nor a tool call,
// including list elements that are not objects.
type OtherPart struct {
	Type string
	Raw  json.RawMessage
}

func (TextPart) contentPart()    {}
func (ToolUsePart) contentPart() {}
func (OtherPart) contentPart()   {}

// DisplayName is the tool name, or "unknown_tool" when the part had none.
func (p ToolUsePart) DisplayName() string {
	if !p.Named {
		return "unknown_tool"
	}
	return p.Name
}
