package swap

// Status is the coarse readiness verdict for a swap.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusNotReady
	StatusPartiallyReady
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusNotReady:
		return "Not Ready"
	case StatusPartiallyReady:
		return "Partially Ready"
	case StatusReady:
		return "Ready"
	default:
		return "Unknown"
	}
}

// DotClass is the presentation hint attached to a classification. The
// classifier only ever emits the first four; DotComplete and DotRemoved are
// assigned by the categorizer for terminal swaps.
type DotClass string

const (
	DotReady    DotClass = "ready"
	DotPartial  DotClass = "partial"
	DotNotReady DotClass = "not-ready"
	DotUnknown  DotClass = "unknown"
	DotComplete DotClass = "complete"
	DotRemoved  DotClass = "removed"
)

// Reason is the human explanation accompanying a status. The values are fixed
// so the action resolver can key off them without free-text matching.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonInitiatorMustOwn   Reason = "Initiator does not own the token specified in the swap"
	ReasonAcceptorMustOwn    Reason = "Acceptor does not own the token specified in the swap"
	ReasonBothMustOwn        Reason = "The initiator and acceptor do not own the tokens specified in the swap"
	ReasonBothMustApprove    Reason = "Both parties must approve their tokens"
	ReasonInitiatorApproval  Reason = "Initiator must approve token"
	ReasonAcceptorApproval   Reason = "Acceptor must approve token"
	ReasonWaitingForAcceptor Reason = "Waiting for acceptor"
)

// Classification is the classifier's output tuple.
type Classification struct {
	Status Status
	Reason Reason
	Dot    DotClass
}

// Unclassified is the degraded result used when a status query fails or the
// contract reports a flag combination it does not itself classify. It must
// never be treated as actionable.
var Unclassified = Classification{Status: StatusUnknown, Reason: ReasonNone, Dot: DotUnknown}

// Classify derives a swap's readiness from freshly queried contract flags.
// Pure function; the precedence of the rules matters because several flags
// can be raised at once, and the first match wins.
func Classify(terms Terms, flags StatusFlags) Classification {
	if terms.Open() {
		return ClassifyInitiatorOnly(flags)
	}

	switch {
	case flags.InitiatorNeedsToOwnToken && flags.AcceptorNeedsToOwnToken:
		return Classification{StatusNotReady, ReasonBothMustOwn, DotNotReady}
	case flags.InitiatorNeedsToOwnToken:
		return Classification{StatusNotReady, ReasonInitiatorMustOwn, DotNotReady}
	case flags.AcceptorNeedsToOwnToken:
		return Classification{StatusNotReady, ReasonAcceptorMustOwn, DotNotReady}
	case flags.InitiatorTokenRequiresApproval && flags.AcceptorTokenRequiresApproval:
		return Classification{StatusNotReady, ReasonBothMustApprove, DotNotReady}
	case flags.InitiatorTokenRequiresApproval:
		return Classification{StatusPartiallyReady, ReasonInitiatorApproval, DotPartial}
	case flags.AcceptorTokenRequiresApproval:
		return Classification{StatusPartiallyReady, ReasonAcceptorApproval, DotPartial}
	case flags.IsReadyForSwapping:
		return Classification{StatusReady, ReasonWaitingForAcceptor, DotReady}
	default:
		return Unclassified
	}
}

// ClassifyInitiatorOnly classifies an open swap from the initiator-side flags
// alone. An open swap has no bound acceptor, so acceptor-side flags are
// meaningless for it; the result is never Partially Ready.
func ClassifyInitiatorOnly(flags StatusFlags) Classification {
	switch {
	case flags.InitiatorNeedsToOwnToken:
		return Classification{StatusNotReady, ReasonInitiatorMustOwn, DotNotReady}
	case flags.InitiatorTokenRequiresApproval:
		return Classification{StatusNotReady, ReasonInitiatorApproval, DotNotReady}
	default:
		return Classification{StatusReady, ReasonWaitingForAcceptor, DotReady}
	}
}
