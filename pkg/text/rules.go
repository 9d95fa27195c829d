package text

// The moment-note rewrite. Older reference outputs carry the short note
// emitted before the per-atom charge table; newer builds print the full
// integration parameters instead. Both strings are fixed for the lifetime
// of the program.
const (
	// momentNoteOld is the diagnostic line as emitted by older builds.
	momentNoteOld = "Note: Diff(up-dn) is a rough approximation of local magnetic moment"

	// momentNoteNew is the line emitted by current builds. The double space
	// in "ratsm=  0.0000" is part of the fixed-width numeric formatting and
	// must be preserved exactly.
	momentNoteNew = "Radius=ratsph(iatom), smearing ratsm=  0.0000. Diff(up-dn)=approximate z local magnetic moment."
)

// Rule is one literal substitution pair. Matching is plain string equality,
// never regex.
type Rule struct {
	From string // text to search for
	To   string // text to substitute
}

// MomentNoteRule returns the fixed rule applied by fixref: the old
// magnetic-moment note is replaced with the current wording.
func MomentNoteRule() Rule {
	return Rule{From: momentNoteOld, To: momentNoteNew}
}
