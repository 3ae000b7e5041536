package block

// Block groups consecutive weeks of one season under a shared training
// intent, e.g. "base volume" or "race-specific sharpening".
type Block struct {
	ID      string
	Name    string
	Intent  string
	WeekIDs []string
}

// Summary is the slice of a block that resolution results carry.
type Summary struct {
	ID     string `json:"blockId"`
	Name   string `json:"name"`
	Intent string `json:"intent"`
}

func (b Block) Summary() Summary {
	return Summary{ID: b.ID, Name: b.Name, Intent: b.Intent}
}
