package swap

import "strings"

// revertExplanations maps known substrings of on-chain rejection text to
// human-readable advice. The table is purely advisory: it never influences
// which actions are offered, it only softens the error the user sees after a
// call they already made. First match wins.
var revertExplanations = []struct {
	substr  string
	message string
}{
	{"insufficient allowance", "The escrow is not approved to move the token yet. Approve the token and try again."},
	{"ERC721: caller is not token owner or approved", "The escrow is not approved to move this NFT yet. Approve it and try again."},
	{"TokenNotApproved", "The escrow is not approved to move the token yet. Approve the token and try again."},
	{"transfer amount exceeds balance", "The sending wallet no longer holds enough of the token for this swap."},
	{"TokenNotOwned", "The sending wallet no longer owns the token specified in the swap."},
	{"ERC721: invalid token ID", "The token specified in the swap no longer exists or changed hands."},
	{"ReentrancyGuard", "The contract rejected a reentrant call. Wait for the pending transaction to settle and retry."},
	{"out of gas", "The transaction ran out of gas. Retry with a higher gas limit."},
	{"user rejected", "The transaction was rejected in the wallet."},
	{"User denied transaction", "The transaction was rejected in the wallet."},
	{"IncorrectOrMissingEthPortion", "The ETH amount sent does not match the ETH portion required by the swap."},
	{"ValueOrTokenMissing", "The ETH amount sent does not match the ETH portion required by the swap."},
	{"NotAcceptor", "Only the acceptor named in the swap can complete it."},
	{"NotInitiator", "Only the initiator of the swap can remove it."},
	{"EmptyWithdrawDisallowed", "There is no ETH balance to withdraw."},
	{"ZeroAddressDisallowed", "The zero address cannot be used here."},
	{"ZeroAddressSetForValidTokenType", "The swap names a token type but no token contract address."},
}

const genericRevertExplanation = "The transaction failed for an unknown reason. No funds were moved."

// ExplainRevert translates terse on-chain rejection text into one of the
// known human-readable explanations, falling back to a generic message for
// anything unrecognized.
func ExplainRevert(msg string) string {
	for _, e := range revertExplanations {
		if strings.Contains(msg, e.substr) {
			return e.message
		}
	}
	return genericRevertExplanation
}
