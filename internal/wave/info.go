package wave

import (
	"github.com/simonhull/wavmeta/internal/text"
)

// InfoEntry is one text chunk of a LIST/INFO block.
type InfoEntry struct {
	ID    string
	Value string
}

// Name returns the conventional field name for the entry's identity, or
// the identity itself when it has none.
func (e InfoEntry) Name() string {
	if name, ok := infoNames[e.ID]; ok {
		return name
	}
	return e.ID
}

var infoNames = map[string]string{
	"ICOP": "copyright",
	"IPRD": "product",
	"IGNR": "genre",
	"IART": "artist",
	"ICMT": "comment",
	"ISFT": "software",
	"ICRD": "created_date",
	"IENG": "engineer",
	"IKEY": "keywords",
	"INAM": "title",
	"ISRC": "source",
	"TAPE": "tape",
}

// Info is a decoded LIST/INFO block. Entries keep file order; duplicates
// are kept too.
type Info struct {
	Entries []InfoEntry
}

// Get returns the first value recorded for the identity.
func (i *Info) Get(id string) (string, bool) {
	for _, e := range i.Entries {
		if e.ID == id {
			return e.Value, true
		}
	}
	return "", false
}

func (i *Info) get(id string) string {
	v, _ := i.Get(id)
	return v
}

// Standard INFO fields. Each returns "" when the entry is absent.
func (i *Info) Title() string       { return i.get("INAM") }
func (i *Info) Artist() string      { return i.get("IART") }
func (i *Info) Comment() string     { return i.get("ICMT") }
func (i *Info) Copyright() string   { return i.get("ICOP") }
func (i *Info) Product() string     { return i.get("IPRD") }
func (i *Info) Genre() string       { return i.get("IGNR") }
func (i *Info) Software() string    { return i.get("ISFT") }
func (i *Info) CreatedDate() string { return i.get("ICRD") }
func (i *Info) Engineer() string    { return i.get("IENG") }
func (i *Info) Keywords() string    { return i.get("IKEY") }
func (i *Info) Source() string      { return i.get("ISRC") }
func (i *Info) Tape() string        { return i.get("TAPE") }

// DecodeInfoEntry decodes the payload of one INFO child chunk.
func DecodeInfoEntry(id string, payload []byte, encoding string) (InfoEntry, error) {
	v, err := text.Decode(payload, encoding, "INFO "+id)
	if err != nil {
		return InfoEntry{}, err
	}
	return InfoEntry{ID: id, Value: v}, nil
}
