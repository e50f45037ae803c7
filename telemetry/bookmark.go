package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkColorChange BookmarkType = "color_change"
	BookmarkMoodSlump   BookmarkType = "mood_slump"
	BookmarkStarving    BookmarkType = "starving"
	BookmarkContented   BookmarkType = "contented"
	BookmarkDeath       BookmarkType = "death"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// Thresholds for the detector.
const (
	slumpDrop         = 20.0 // Happiness mean drop below the rolling average
	starvingP10       = 15.0
	starvingRecovered = 40.0
	contentedWindows  = 3
)

// BookmarkDetector detects interesting moments in a pet's life.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	lastColor       string
	starving        bool // latched until fullness recovers
	contentedStreak int
	deathSeen       bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for the slump average
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkDeath(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if stats.Alive {
		if b := bd.checkColorChange(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkMoodSlump(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkStarving(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkContented(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	bd.lastColor = stats.Color

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkDeath(stats WindowStats) *Bookmark {
	if stats.Alive || bd.deathSeen {
		return nil
	}
	bd.deathSeen = true
	return &Bookmark{
		Type:        BookmarkDeath,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Pet died at fullness %.1f, happiness %.1f", stats.Fullness, stats.Happiness),
	}
}

func (bd *BookmarkDetector) checkColorChange(stats WindowStats) *Bookmark {
	if bd.lastColor == "" || stats.Color == bd.lastColor {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkColorChange,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Color changed from %s to %s", bd.lastColor, stats.Color),
	}
}

func (bd *BookmarkDetector) checkMoodSlump(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.HappinessMean
	}
	avg := total / float64(len(history))

	if stats.HappinessMean < avg-slumpDrop {
		return &Bookmark{
			Type:        BookmarkMoodSlump,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Happiness mean %.1f is %.1f below average (%.1f)", stats.HappinessMean, avg-stats.HappinessMean, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStarving(stats WindowStats) *Bookmark {
	if bd.starving {
		if stats.FullnessP10 > starvingRecovered {
			bd.starving = false
		}
		return nil
	}
	if stats.FullnessP10 >= starvingP10 {
		return nil
	}
	bd.starving = true
	return &Bookmark{
		Type:        BookmarkStarving,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Fullness p10 fell to %.1f", stats.FullnessP10),
	}
}

func (bd *BookmarkDetector) checkContented(stats WindowStats) *Bookmark {
	if stats.Color != "pink" {
		bd.contentedStreak = 0
		return nil
	}
	bd.contentedStreak++
	if bd.contentedStreak != contentedWindows {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkContented,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Pet stayed pink for %d windows", contentedWindows),
	}
}
