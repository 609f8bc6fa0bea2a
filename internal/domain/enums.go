package domain

type Kind string

const (
	KindRoot           Kind = "root"
	KindGroup          Kind = "group"
	KindMinistry       Kind = "ministry"
	KindTag            Kind = "tag"
	KindSink           Kind = "sink"
	KindDeletionRecord Kind = "deletion_record"
)

// Slot names one ordered child sequence of a node.
type Slot string

const (
	SlotNone       Slot = ""
	SlotGroups     Slot = "groups"
	SlotMinistries Slot = "ministries"
	SlotSubgroups  Slot = "subgroups"
	SlotTags       Slot = "tags"
	SlotRecords    Slot = "records"
	SlotContent    Slot = "content"
)

// ownedSlots lists the sequences each kind carries.
var ownedSlots = map[Kind][]Slot{
	KindRoot:           {SlotGroups},
	KindGroup:          {SlotTags, SlotMinistries, SlotSubgroups},
	KindMinistry:       {SlotTags},
	KindSink:           {SlotRecords},
	KindDeletionRecord: {SlotContent},
}

// slotAccepts lists the kinds each slot may hold.
var slotAccepts = map[Slot][]Kind{
	SlotGroups:     {KindGroup},
	SlotMinistries: {KindMinistry},
	SlotSubgroups:  {KindGroup},
	SlotTags:       {KindTag},
	SlotRecords:    {KindDeletionRecord},
	SlotContent:    {KindGroup, KindMinistry},
}

// Owns reports whether nodes of kind k carry slot s.
func (k Kind) Owns(s Slot) bool {
	for _, x := range ownedSlots[k] {
		if x == s {
			return true
		}
	}
	return false
}

// Accepts reports whether slot s may hold a node of kind k.
func (s Slot) Accepts(k Kind) bool {
	for _, x := range slotAccepts[s] {
		if x == k {
			return true
		}
	}
	return false
}
