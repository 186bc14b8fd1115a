package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// StarRating renders a row of MaxRating stars with the first rating filled
type StarRating struct {
	MaxRating int
}

// NewStarRating creates a ten-star rating control
func NewStarRating() StarRating {
	return StarRating{MaxRating: 10}
}

// View renders the stars followed by the numeric rating, or a blank label when unrated
func (s StarRating) View(rating int) string {
	var b strings.Builder
	for i := 1; i <= s.MaxRating; i++ {
		if i <= rating {
			b.WriteString(styles.StarFullStyle.Render("★"))
		} else {
			b.WriteString(styles.StarEmptyStyle.Render("☆"))
		}
	}

	label := ""
	if rating > 0 {
		label = fmt.Sprintf("%d", rating)
	}
	return b.String() + " " + styles.AccentStyle.Render(label)
}
