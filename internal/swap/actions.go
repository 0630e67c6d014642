package swap

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3"
)

// Action labels rendered by the presentation layer. Targets name the contract
// the call must go to: token approvals hit the token contract, completion and
// removal hit the escrow itself.
const (
	LabelApproveToken = "Approve Token"
	LabelCompleteSwap = "Complete Swap"
	LabelRemoveSwap   = "Remove Swap"
)

// Action is one advisory next step for the current viewer. The resolver never
// performs the call; it only says what is permitted and where it goes.
type Action struct {
	Label    string
	Target   common.Address
	Disabled bool
}

// Role is the viewer's relationship to a swap.
type Role uint8

const (
	RoleNone Role = iota
	RoleInitiator
	RoleAcceptor
)

// reasonClass folds the fixed reason strings into the categories the decision
// table keys on.
type reasonClass uint8

const (
	classNone reasonClass = iota
	classOwnership
	classInitiatorApproval
	classAcceptorApproval
	classBothApproval
)

func classifyReason(r Reason) reasonClass {
	switch r {
	case ReasonInitiatorMustOwn, ReasonAcceptorMustOwn, ReasonBothMustOwn:
		return classOwnership
	case ReasonInitiatorApproval:
		return classInitiatorApproval
	case ReasonAcceptorApproval:
		return classAcceptorApproval
	case ReasonBothMustApprove:
		return classBothApproval
	default:
		return classNone
	}
}

// actionRule is one row of the decision table. Rules are evaluated in order
// and the first match wins; match and build are kept separate so each row is
// independently testable.
type actionRule struct {
	name  string
	match func(q actionQuery) bool
	build func(q actionQuery) []Action
}

type actionQuery struct {
	open   bool
	role   Role
	status Status
	reason reasonClass
	terms  Terms
	escrow common.Address
}

// ActionResolver turns a classified swap plus viewer identity into the
// ordered list of permitted actions. Purely advisory; it holds no state
// beyond the escrow address and a logger for unmatched combinations.
type ActionResolver struct {
	escrow common.Address
	log    *logan.Entry
	rules  []actionRule
}

func NewActionResolver(escrow common.Address, log *logan.Entry) *ActionResolver {
	r := &ActionResolver{escrow: escrow, log: log}
	r.rules = actionRules()
	return r
}

// Resolve returns the viewer's permitted actions for a swap. Expired and
// Unknown-status swaps always resolve to nothing: the first because the
// contract has already invalidated them, the second because no button may be
// backed by an indeterminate on-chain state.
func (r *ActionResolver) Resolve(cs Classified, viewer common.Address, now time.Time) []Action {
	if cs.Terms.Expired(now) || cs.Status == StatusUnknown {
		return nil
	}

	q := actionQuery{
		open:   cs.Terms.Open(),
		role:   viewerRole(cs.Terms, viewer),
		status: cs.Status,
		reason: classifyReason(cs.Reason),
		terms:  cs.Terms,
		escrow: r.escrow,
	}

	for _, rule := range r.rules {
		if rule.match(q) {
			return rule.build(q)
		}
	}

	r.log.WithFields(logan.F{
		"swap_id": cs.Terms.SwapID.String(),
		"status":  cs.Status.String(),
		"reason":  string(cs.Reason),
		"open":    q.open,
		"role":    uint8(q.role),
	}).Warn("no action rule matched swap")
	return nil
}

func viewerRole(terms Terms, viewer common.Address) Role {
	switch {
	case viewer == terms.Initiator:
		return RoleInitiator
	case !terms.Open() && viewer == terms.Acceptor:
		return RoleAcceptor
	case terms.Open():
		// Any non-initiator may step in as acceptor of an open swap.
		return RoleAcceptor
	default:
		return RoleNone
	}
}

func approve(target common.Address) Action {
	return Action{Label: LabelApproveToken, Target: target}
}

func complete(escrow common.Address) Action {
	return Action{Label: LabelCompleteSwap, Target: escrow}
}

func remove(escrow common.Address) Action {
	return Action{Label: LabelRemoveSwap, Target: escrow}
}

func actionRules() []actionRule {
	return []actionRule{
		{
			name: "open initiator must approve",
			match: func(q actionQuery) bool {
				return q.open && q.role == RoleInitiator && q.reason == classInitiatorApproval
			},
			build: func(q actionQuery) []Action {
				return []Action{approve(q.terms.InitiatorERCContract)}
			},
		},
		{
			name: "open initiator may cancel",
			match: func(q actionQuery) bool {
				return q.open && q.role == RoleInitiator
			},
			build: func(q actionQuery) []Action {
				return []Action{remove(q.escrow)}
			},
		},
		{
			name: "open outsider blocked by ownership",
			match: func(q actionQuery) bool {
				return q.open && q.role != RoleInitiator && q.reason == classOwnership
			},
			build: func(actionQuery) []Action { return nil },
		},
		{
			name: "open outsider ready to complete",
			match: func(q actionQuery) bool {
				return q.open && q.role != RoleInitiator && q.status == StatusReady
			},
			build: func(q actionQuery) []Action {
				return []Action{approve(q.terms.AcceptorERCContract), complete(q.escrow)}
			},
		},
		{
			name: "open outsider pre-approves",
			match: func(q actionQuery) bool {
				return q.open && q.role != RoleInitiator
			},
			build: func(q actionQuery) []Action {
				return []Action{approve(q.terms.AcceptorERCContract)}
			},
		},
		{
			name: "targeted ownership failure, initiator cancels",
			match: func(q actionQuery) bool {
				return !q.open && q.reason == classOwnership && q.role == RoleInitiator
			},
			build: func(q actionQuery) []Action {
				return []Action{remove(q.escrow)}
			},
		},
		{
			name: "targeted ownership failure, others blocked",
			match: func(q actionQuery) bool {
				return !q.open && q.reason == classOwnership
			},
			build: func(actionQuery) []Action { return nil },
		},
		{
			name: "targeted initiator must approve then may cancel",
			match: func(q actionQuery) bool {
				return !q.open && q.role == RoleInitiator &&
					(q.status == StatusNotReady ||
						(q.status == StatusPartiallyReady && q.reason == classInitiatorApproval))
			},
			build: func(q actionQuery) []Action {
				return []Action{approve(q.terms.InitiatorERCContract), remove(q.escrow)}
			},
		},
		{
			name: "targeted initiator may cancel while unaccepted",
			match: func(q actionQuery) bool {
				return !q.open && q.role == RoleInitiator
			},
			build: func(q actionQuery) []Action {
				return []Action{remove(q.escrow)}
			},
		},
		{
			name: "targeted acceptor pre-approves initiator side",
			match: func(q actionQuery) bool {
				return !q.open && q.role == RoleAcceptor && q.reason == classInitiatorApproval
			},
			build: func(q actionQuery) []Action {
				return []Action{approve(q.terms.InitiatorERCContract)}
			},
		},
		{
			name: "targeted acceptor must approve own side",
			match: func(q actionQuery) bool {
				return !q.open && q.role == RoleAcceptor &&
					(q.reason == classAcceptorApproval || q.reason == classBothApproval)
			},
			build: func(q actionQuery) []Action {
				return []Action{approve(q.terms.AcceptorERCContract)}
			},
		},
		{
			name: "targeted acceptor completes",
			match: func(q actionQuery) bool {
				return !q.open && q.role == RoleAcceptor && q.status == StatusReady
			},
			build: func(q actionQuery) []Action {
				return []Action{complete(q.escrow)}
			},
		},
		{
			name: "bystander",
			match: func(q actionQuery) bool {
				return q.role == RoleNone
			},
			build: func(actionQuery) []Action { return nil },
		},
	}
}
