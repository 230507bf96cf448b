package model

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	RankNotFoundError = errors.New("rank not found")
	LastRankError     = errors.New("a rank set must keep at least one rank")
)

// Session is the wizard state owned by the caller. Every operation returns a
// new Session and leaves the receiver untouched.
type Session struct {
	ServerType       ServerType `json:"serverType"`
	SelectedPlugins  []string   `json:"selectedPlugins"`
	Ranks            []Rank     `json:"ranks"`
	PermissionPlugin Dialect    `json:"permissionPlugin,omitempty"`
}

func (s Session) Clone() Session {
	out := s
	if s.SelectedPlugins != nil {
		out.SelectedPlugins = make([]string, len(s.SelectedPlugins))
		copy(out.SelectedPlugins, s.SelectedPlugins)
	}
	out.Ranks = CloneRanks(s.Ranks)
	return out
}

func CloneRanks(ranks []Rank) []Rank {
	if ranks == nil {
		return nil
	}
	out := make([]Rank, len(ranks))
	for i, r := range ranks {
		out[i] = r.clone()
	}
	return out
}

// NewRank creates a rank with a fresh id and a machine-safe name derived from
// the display name.
func NewRank(displayName string, level RankLevel) Rank {
	return Rank{
		Id:          uuid.NewString(),
		Name:        SanitizeName(displayName),
		DisplayName: displayName,
		Prefix:      "[" + displayName + "]",
		PrefixColor: "&7",
		Separator:   " ",
		Level:       level,
	}
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9_\-]`)

// SanitizeName lowercases the name, replaces whitespace with underscores,
// spells out "+" and drops everything else that is not safe in a group
// identifier.
func SanitizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "+", "_plus")
	name = strings.Join(strings.Fields(name), "_")
	return unsafeNameChars.ReplaceAllString(name, "")
}

// NormalizeOrder returns a copy of the ranks sorted by Order with Order
// renumbered contiguously from 0.
func NormalizeOrder(ranks []Rank) []Rank {
	out := CloneRanks(ranks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	for i := range out {
		out[i].Order = i
	}
	return out
}

// AddRank places the rank at the top of the hierarchy.
func (s Session) AddRank(rank Rank) Session {
	out := s.Clone()
	out.Ranks = NormalizeOrder(out.Ranks)
	if rank.Id == "" {
		rank.Id = uuid.NewString()
	}
	rank = rank.clone()
	rank.Order = len(out.Ranks)
	out.Ranks = append(out.Ranks, rank)
	return out
}

func (s Session) RemoveRank(id string) (Session, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return s, RankNotFoundError
	}
	if len(s.Ranks) <= 1 {
		return s, LastRankError
	}

	out := s.Clone()
	out.Ranks = append(out.Ranks[:idx], out.Ranks[idx+1:]...)
	out.Ranks = NormalizeOrder(out.Ranks)
	return out, nil
}

// MoveRank moves a rank to the given position in the hierarchy, shifting the
// ranks in between. Out of range positions are clamped.
func (s Session) MoveRank(id string, order int) (Session, error) {
	if s.indexOf(id) < 0 {
		return s, RankNotFoundError
	}

	ranks := NormalizeOrder(s.Ranks)
	from := 0
	for i, r := range ranks {
		if r.Id == id {
			from = i
		}
	}
	order = max(0, min(order, len(ranks)-1))

	moved := ranks[from]
	ranks = append(ranks[:from], ranks[from+1:]...)
	ranks = append(ranks[:order], append([]Rank{moved}, ranks[order:]...)...)
	for i := range ranks {
		ranks[i].Order = i
	}

	out := s.Clone()
	out.Ranks = ranks
	return out, nil
}

// UpdateRank replaces the editable fields of the rank with the same id. The
// rank keeps its position.
func (s Session) UpdateRank(rank Rank) (Session, error) {
	idx := s.indexOf(rank.Id)
	if idx < 0 {
		return s, RankNotFoundError
	}

	out := s.Clone()
	rank = rank.clone()
	rank.Order = out.Ranks[idx].Order
	rank.Name = SanitizeName(rank.Name)
	out.Ranks[idx] = rank
	return out, nil
}

func (s Session) indexOf(id string) int {
	for i, r := range s.Ranks {
		if r.Id == id {
			return i
		}
	}
	return -1
}
