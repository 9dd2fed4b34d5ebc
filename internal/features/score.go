package features

// Notes longer than this earn the substantial-notes score bonus.
const substantialNotesChars = 50

// QualityScore computes the composite contact quality score:
//
//	3×has_email + 2×has_notes + 2×(notes_length>50) + 1×(NOT email_is_free)
//
// The last term applies whenever email_is_free is 0, including rows with
// no email at all. Downstream consumers rely on the existing scale, so the
// term is intentionally not gated on has_email.
func QualityScore(hasEmail, hasNotes, notesLength, emailIsFree int) int {
	score := 3*hasEmail + 2*hasNotes
	if notesLength > substantialNotesChars {
		score += 2
	}
	if emailIsFree == 0 {
		score++
	}
	return score
}
