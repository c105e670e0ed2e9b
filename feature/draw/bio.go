package draw

import "fmt"

// Bio is a generated persona biography.
type Bio struct {
	Age         int
	Gender      string
	Orientation string
}

// String renders the biography as dealt to a player.
func (b Bio) String() string {
	return fmt.Sprintf("%d years, %s, %s", b.Age, b.Gender, b.Orientation)
}

// GenerateBio draws a biography.
func GenerateBio(src Source) Bio {
	return Bio{
		Age:         Age(src),
		Gender:      Gender(src),
		Orientation: Orientation(src),
	}
}
