// Package matching applies the three-tier decision policy that binds a
// compendium entry to at most one candidate file per role.
//
// A score at or above the match threshold binds automatically. A score in
// the band between the ask and match thresholds is handed to a Decider,
// which may accept, reject, or switch the ask tier off for the rest of the
// run. Anything lower is rejected. Bound files are consumed from their
// candidate index so later entries cannot claim them; rejected files stay
// available. Entries are matched greedily in the order they are presented.
package matching
