package sheet

// ValueKind tags the Value variants.
type ValueKind uint8

const (
	KindStat ValueKind = iota + 1
	KindString
	KindInt
	KindDice
	KindDeathSaves
	KindItem
	KindItemList
)

var valueKindNames = map[ValueKind]string{
	KindStat:       "stat",
	KindString:     "string",
	KindInt:        "int",
	KindDice:       "dice",
	KindDeathSaves: "deathsaves",
	KindItem:       "item",
	KindItemList:   "itemlist",
}

func (k ValueKind) String() string {
	if s, ok := valueKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Value is implemented only by the variants in this package.
type Value interface {
	Kind() ValueKind
	value()
}

// Stat is '%stat[ability: A; mod: M]'.
type Stat struct {
	Ability *int
	Mod     *int
}

// Str is '%string["..."]' with the quotes removed.
type Str struct {
	Value *string
}

// Int is '%int[N]'.
type Int struct {
	Value *int
}

// Dice is '%dice[CdF+M]'. It describes a roll; it never holds a rolled result.
type Dice struct {
	Count    *int
	Faces    *int
	Modifier *int
}

// DeathSaves is '%deathsaves[succ: S; fail: F]'.
type DeathSaves struct {
	Succ *int
	Fail *int
}

// Item is '%item[val: "..."; qty: Q; weight: W]'.
type Item struct {
	Val    *string
	Qty    *int
	Weight *int
}

// ItemList is '%itemlist[item; item; ...]'. Items may be empty.
type ItemList struct {
	Items []Item
}

func (Stat) Kind() ValueKind       { return KindStat }
func (Str) Kind() ValueKind        { return KindString }
func (Int) Kind() ValueKind        { return KindInt }
func (Dice) Kind() ValueKind       { return KindDice }
func (DeathSaves) Kind() ValueKind { return KindDeathSaves }
func (Item) Kind() ValueKind       { return KindItem }
func (ItemList) Kind() ValueKind   { return KindItemList }

func (Stat) value()       {}
func (Str) value()        {}
func (Int) value()        {}
func (Dice) value()       {}
func (DeathSaves) value() {}
func (Item) value()       {}
func (ItemList) value()   {}

// Ptr returns a pointer to a copy of v. Handy for building values by hand.
func Ptr[T any](v T) *T {
	return &v
}
