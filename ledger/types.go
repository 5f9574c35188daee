package ledger

// VoteOption is addressed by its position in Vote.Options; positions never change.
type VoteOption struct {
	Text      string `json:"text"`
	VoteCount uint64 `json:"voteCount"`
}

// Vote is one ballot. Options and timing are fixed at creation; only IsActive,
// TotalVotes and the option tallies move, and only forward.
type Vote struct {
	ID          uint64       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Creator     string       `json:"creator"`
	Options     []VoteOption `json:"options"`
	StartTime   int64        `json:"startTime"`
	EndTime     int64        `json:"endTime"`
	IsActive    bool         `json:"isActive"`
	TotalVotes  uint64       `json:"totalVotes"`
}

// VoteDetails is the getVoteDetails view: everything but the options.
type VoteDetails struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Creator     string `json:"creator"`
	StartTime   int64  `json:"startTime"`
	EndTime     int64  `json:"endTime"`
	IsActive    bool   `json:"isActive"`
	TotalVotes  uint64 `json:"totalVotes"`
}

func (v *Vote) Details() *VoteDetails {
	return &VoteDetails{
		Title:       v.Title,
		Description: v.Description,
		Creator:     v.Creator,
		StartTime:   v.StartTime,
		EndTime:     v.EndTime,
		IsActive:    v.IsActive,
		TotalVotes:  v.TotalVotes,
	}
}

func (v *Vote) Clone() *Vote {
	c := *v
	c.Options = make([]VoteOption, len(v.Options))
	copy(c.Options, v.Options)
	return &c
}

// Tallied reports whether the option counts add up to TotalVotes.
func (v *Vote) Tallied() bool {
	var sum uint64
	for _, o := range v.Options {
		sum += o.VoteCount
	}
	return sum == v.TotalVotes
}
