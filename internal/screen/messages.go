package screen

// SignedInMsg announces the active player so the frame can show their
// name and badge count in the header.
type SignedInMsg struct {
	Name    string
	Teacher bool
	Badges  int
}

// SignedOutMsg clears the active player from the header.
type SignedOutMsg struct{}

// BadgeCountMsg updates the badge count shown in the header after new
// achievements unlock.
type BadgeCountMsg struct {
	Count int
}
