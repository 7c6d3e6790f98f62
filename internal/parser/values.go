package parser

import (
	"dndml/internal/diag"
	"dndml/internal/sheet"
	"dndml/internal/token"
)

// parseValue dispatches on the value keyword. A token that is not one of the
// seven keywords fails with UnknownValueKind and is left unconsumed.
func (p *parser) parseValue() (sheet.Value, error) {
	switch p.buf.PeekKind() {
	case token.KwStat:
		return p.parseStat()
	case token.KwString:
		return p.parseStr()
	case token.KwInt:
		return p.parseInt()
	case token.KwDice:
		return p.parseDice()
	case token.KwDeathSaves:
		return p.parseDeathSaves()
	case token.KwItem:
		return p.parseItem()
	case token.KwItemList:
		return p.parseItemList()
	}
	return nil, p.errorAt(UnknownValueKind, diag.SynUnknownValueKind, valueKinds)
}

// stat := '%stat' '[' 'ability' ':' int_or_null ';' 'mod' ':' int_or_null ']'
func (p *parser) parseStat() (sheet.Value, error) {
	var v sheet.Stat
	err := p.bracketed(token.KwStat, func() (err error) {
		if err = p.expectAttr("ability"); err != nil {
			return err
		}
		if v.Ability, err = p.parseIntOrNull(); err != nil {
			return err
		}
		if _, err = p.buf.Consume(token.Semicolon); err != nil {
			return err
		}
		if err = p.expectAttr("mod"); err != nil {
			return err
		}
		v.Mod, err = p.parseIntOrNull()
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// str := '%string' '[' string_or_null ']'
func (p *parser) parseStr() (sheet.Value, error) {
	var v sheet.Str
	err := p.bracketed(token.KwString, func() (err error) {
		v.Value, err = p.parseStringOrNull()
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// int := '%int' '[' int_or_null ']'
func (p *parser) parseInt() (sheet.Value, error) {
	var v sheet.Int
	err := p.bracketed(token.KwInt, func() (err error) {
		v.Value, err = p.parseIntOrNull()
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// dice := '%dice' '[' int_or_null 'd' int_or_null '+' int_or_null ']'
func (p *parser) parseDice() (sheet.Value, error) {
	var v sheet.Dice
	err := p.bracketed(token.KwDice, func() (err error) {
		if v.Count, err = p.parseIntOrNull(); err != nil {
			return err
		}
		if err = p.expectWord("d"); err != nil {
			return err
		}
		if v.Faces, err = p.parseIntOrNull(); err != nil {
			return err
		}
		if _, err = p.buf.Consume(token.Plus); err != nil {
			return err
		}
		v.Modifier, err = p.parseIntOrNull()
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// deathsave := '%deathsaves' '[' 'succ' ':' int_or_null ';' 'fail' ':' int_or_null ']'
func (p *parser) parseDeathSaves() (sheet.Value, error) {
	var v sheet.DeathSaves
	err := p.bracketed(token.KwDeathSaves, func() (err error) {
		if err = p.expectAttr("succ"); err != nil {
			return err
		}
		if v.Succ, err = p.parseIntOrNull(); err != nil {
			return err
		}
		if _, err = p.buf.Consume(token.Semicolon); err != nil {
			return err
		}
		if err = p.expectAttr("fail"); err != nil {
			return err
		}
		v.Fail, err = p.parseIntOrNull()
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *parser) parseItem() (sheet.Value, error) {
	item, err := p.parseItemBody()
	if err != nil {
		return nil, err
	}
	return item, nil
}

// item := '%item' '[' 'val' ':' string_or_null ';' 'qty' ':' int_or_null ';' 'weight' ':' int_or_null ']'
func (p *parser) parseItemBody() (sheet.Item, error) {
	var v sheet.Item
	err := p.bracketed(token.KwItem, func() (err error) {
		if err = p.expectAttr("val"); err != nil {
			return err
		}
		if v.Val, err = p.parseStringOrNull(); err != nil {
			return err
		}
		if _, err = p.buf.Consume(token.Semicolon); err != nil {
			return err
		}
		if err = p.expectAttr("qty"); err != nil {
			return err
		}
		if v.Qty, err = p.parseIntOrNull(); err != nil {
			return err
		}
		if _, err = p.buf.Consume(token.Semicolon); err != nil {
			return err
		}
		if err = p.expectAttr("weight"); err != nil {
			return err
		}
		v.Weight, err = p.parseIntOrNull()
		return err
	})
	return v, err
}

// itemlist := '%itemlist' '[' (item ';')* ']'
// The closing bracket is checked before each item, so an empty list is legal.
func (p *parser) parseItemList() (sheet.Value, error) {
	v := sheet.ItemList{Items: []sheet.Item{}}
	err := p.bracketed(token.KwItemList, func() error {
		for !p.at(token.RBracket) {
			switch p.buf.PeekKind() {
			case token.KwItem:
			case token.EOF:
				return p.errorAt(SyntaxError, diag.SynUnterminatedItemList, "']'")
			default:
				return p.unexpected("'%item' or ']'")
			}
			item, err := p.parseItemBody()
			if err != nil {
				return err
			}
			v.Items = append(v.Items, item)
			if _, err = p.buf.Consume(token.Semicolon); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
