package level

import (
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level/formats"
)

// FromDocument converts a parsed document into a level template.
func FromDocument(doc formats.Document) Level {
	l := Level{Name: doc.Name}
	for _, p := range doc.Platforms {
		pl := Platform{ID: ID(p.ID), Box: box(p.ObjectDoc)}
		if p.Movement != nil {
			pl.Movement = &Movement{Path: p.Movement.Path, Speed: p.Movement.Speed}
		}
		l.Platforms = append(l.Platforms, pl)
	}
	for _, c := range doc.Checkpoints {
		l.Checkpoints = append(l.Checkpoints, Checkpoint{ID: ID(c.ID), Box: box(c)})
	}
	for _, t := range doc.Traps {
		tr := Trap{ID: ID(t.ID), Box: box(t.ObjectDoc), Kind: TrapKind(t.Type), PlatformID: NoID}
		if tr.Kind == "" {
			tr.Kind = TrapSpikes
		}
		if t.PlatformID != nil {
			tr.PlatformID = ID(*t.PlatformID)
		}
		l.Traps = append(l.Traps, tr)
	}
	for _, s := range doc.Signs {
		sg := Sign{ID: ID(s.ID), Box: box(s.ObjectDoc), Variant: SignVariant(s.Variant)}
		if sg.Variant == "" {
			sg.Variant = SignEasy
		}
		l.Signs = append(l.Signs, sg)
	}
	return l
}

// ToDocument converts l into its file representation.
func ToDocument(l Level) formats.Document {
	doc := formats.Document{
		Name:        l.Name,
		Platforms:   []formats.PlatformDoc{},
		Checkpoints: []formats.ObjectDoc{},
		Traps:       []formats.TrapDoc{},
		Signs:       []formats.SignDoc{},
	}
	for _, p := range l.Platforms {
		pd := formats.PlatformDoc{ObjectDoc: object(p.ID, p.Box)}
		if p.Movement != nil {
			pd.Movement = &formats.MovementDoc{Path: p.Movement.Path, Speed: p.Movement.Speed}
		}
		doc.Platforms = append(doc.Platforms, pd)
	}
	for _, c := range l.Checkpoints {
		doc.Checkpoints = append(doc.Checkpoints, object(c.ID, c.Box))
	}
	for _, t := range l.Traps {
		td := formats.TrapDoc{ObjectDoc: object(t.ID, t.Box), Type: string(t.Kind)}
		if t.PlatformID.Valid() {
			pid := int(t.PlatformID)
			td.PlatformID = &pid
		}
		doc.Traps = append(doc.Traps, td)
	}
	for _, s := range l.Signs {
		doc.Signs = append(doc.Signs, formats.SignDoc{ObjectDoc: object(s.ID, s.Box), Variant: string(s.Variant)})
	}
	return doc
}

// Decode parses data in the format implied by ext and validates the result.
func Decode(data []byte, ext string) (Level, error) {
	doc, err := formats.Parse(data, ext)
	if err != nil {
		return Level{}, err
	}
	l := FromDocument(doc)
	if err := l.Validate(); err != nil {
		return Level{}, err
	}
	return l, nil
}

// Encode renders l in the format implied by ext.
func Encode(l Level, ext string) ([]byte, error) {
	return formats.Encode(ToDocument(l), ext)
}

func box(o formats.ObjectDoc) core.Box {
	return core.Box{Position: o.Position, Width: o.Width, Height: o.Height}
}

func object(id ID, b core.Box) formats.ObjectDoc {
	return formats.ObjectDoc{ID: int(id), Position: b.Position, Width: b.Width, Height: b.Height}
}
