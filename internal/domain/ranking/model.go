package ranking

import "time"

// Ranking is one weekly tour ranking entry. (PlayerID, Date) is unique.
type Ranking struct {
	PlayerID string
	Date     time.Time
	Rank     int
	Points   int
}
