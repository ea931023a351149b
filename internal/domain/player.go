package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest display name accepted, in runes
const MaxNameLength = 24

// Player represents a player at the table
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsTraitor bool   `json:"isTraitor"`
}

// NewPlayer creates a non-traitor player with the given ID and name
func NewPlayer(id, name string) Player {
	return Player{
		ID:   id,
		Name: name,
	}
}

// NormalizeName trims a submitted display name and checks its length
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

// PlayerInfo is a safe view of player data (hides role from other players)
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToInfo converts a Player to PlayerInfo (without role)
func (p Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:   p.ID,
		Name: p.Name,
	}
}

// clearRoles returns a copy of players with every role reset to non-traitor
func clearRoles(players []Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		p.IsTraitor = false
		out[i] = p
	}
	return out
}

func indexOfPlayer(players []Player, id string) int {
	for i, p := range players {
		if p.ID == id {
			return i
		}
	}
	return -1
}
