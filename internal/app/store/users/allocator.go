package userstore

import (
	"math/rand"

	"github.com/quangoinc/qscore/internal/domain/models"
)

// Palette is the fixed set of avatar accent colors, in assignment order.
// Crimson family first, contrast colors interleaved so early members are
// distinguishable on the leaderboard chart.
var Palette = []string{
	"#C41E3A", // Crimson
	"#4ECDC4", // Teal
	"#FFE66D", // Yellow
	"#E85D75", // Light crimson
	"#FF6B6B", // Coral
	"#8B1538", // Dark crimson
	"#95E1D3", // Mint
	"#F38181", // Salmon
	"#AA96DA", // Lavender
	"#FCBAD3", // Pink
}

// FaceVariants is the number of avatar face expressions.
const FaceVariants = 10

// PickColorFace assigns a color and face for a new member given the
// members that already exist. Each picks the lowest-index value no
// current member holds; once the palette is exhausted, color wraps by
// member count and the face is random.
func PickColorFace(existing []models.TeamMember) (string, int) {
	usedColors := make(map[string]bool, len(existing))
	usedFaces := make(map[int]bool, len(existing))
	for _, m := range existing {
		usedColors[m.Color] = true
		usedFaces[m.Face] = true
	}

	color := ""
	for _, c := range Palette {
		if !usedColors[c] {
			color = c
			break
		}
	}
	if color == "" {
		color = Palette[len(existing)%len(Palette)]
	}

	face := -1
	for f := 0; f < FaceVariants; f++ {
		if !usedFaces[f] {
			face = f
			break
		}
	}
	if face == -1 {
		face = rand.Intn(FaceVariants)
	}

	return color, face
}

// ValidColor reports whether c is in the palette.
func ValidColor(c string) bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// ValidFace reports whether f is a known face variant.
func ValidFace(f int) bool { return f >= 0 && f < FaceVariants }
