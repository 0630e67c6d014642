package requests

// Resource types understood by the collector.
const (
	SNAPSHOT = "viewer-snapshot"
)

type Key struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
}

type SnapshotRequest struct {
	Data Snapshot `json:"data"`
}

type Snapshot struct {
	Key
	Attributes SnapshotAttributes `json:"attributes"`
}

type SnapshotAttributes struct {
	Viewer      string `json:"viewer"`
	Seq         uint64 `json:"seq"`
	SrcChain    int64  `json:"src_chain"`
	GeneratedAt string `json:"generated_at"`
	Advisory    string `json:"advisory,omitempty"`

	Initiated []SwapView `json:"initiated"`
	ToAccept  []SwapView `json:"to_accept"`
	Open      []SwapView `json:"open"`
	Completed []SwapView `json:"completed"`
	Removed   []SwapView `json:"removed"`
}

// SwapView is the display-ready projection of one swap: every integer already
// rendered as a decimal string, the expiry formatted, actions resolved for
// the snapshot's viewer.
type SwapView struct {
	SwapID string `json:"swap_id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Dot    string `json:"dot"`
	Cause  string `json:"cause,omitempty"`

	Expiry    string `json:"expiry"`
	Initiator string `json:"initiator"`
	Acceptor  string `json:"acceptor,omitempty"`

	InitiatorToken SideView `json:"initiator_token"`
	AcceptorToken  SideView `json:"acceptor_token"`

	Actions []ActionView `json:"actions,omitempty"`
}

// SideView describes what one party puts into the swap.
type SideView struct {
	TokenType  string `json:"token_type"`
	Contract   string `json:"contract,omitempty"`
	Name       string `json:"name"`
	TokenID    string `json:"token_id,omitempty"`
	Quantity   string `json:"quantity,omitempty"`
	ETHPortion string `json:"eth_portion"`
}

type ActionView struct {
	Label    string `json:"label"`
	Target   string `json:"target"`
	Disabled bool   `json:"disabled"`
}

func NewSnapshot(viewer string, seq uint64, srcChain int64, generatedAt string, advisory string) SnapshotRequest {
	return SnapshotRequest{
		Data: Snapshot{
			Key: Key{
				ID:   viewer,
				Type: SNAPSHOT,
			},
			Attributes: SnapshotAttributes{
				Viewer:      viewer,
				Seq:         seq,
				SrcChain:    srcChain,
				GeneratedAt: generatedAt,
				Advisory:    advisory,
			},
		},
	}
}
