/*
Eurium contract is a NEP-17 token ledger of a reserve-backed euro stablecoin.

The contract keeps total supply and account balances, issues tokens by MINTER
request within the supply cap fixed at deployment and takes tokens out of
circulation through the redemption workflow: a holder escrows tokens on the
contract account together with an off-chain payout reference, then ADMIN
either finalizes the request (escrow is burnt) or the holder cancels it
(escrow is returned). AUDITOR publishes commitments to off-chain reserve
reports, ADMIN captures balance snapshots for historical queries and PAUSER
can stop every balance movement.

Privileged methods are gated by the role registry stored in the contract:
ADMIN, PAUSER, MINTER, UPGRADER and AUDITOR. ADMIN manages membership of
every role. Initial role holders are deployment arguments.

# Contract notifications

Transfer notification. This is NEP-17 standard notification. Mints have null
`from`, burns have null `to`. Escrow and refund of redemptions are transfers
from/to the contract account.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Mint and Burn notifications accompany Transfer notifications of issued and
destroyed tokens.

	Mint:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	Burn:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

RedemptionRequested notification is the only way to learn identifier of the
new redemption request from the chain.

	RedemptionRequested:
	  - name: internalId
	    type: Integer
	  - name: requester
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: externalReference
	    type: String

RedemptionCancelled and RedemptionFinalized notifications have the same
parameters without the reference.

ReserveProofUpdated notification carries the published reserve commitment and
block time of publication.

	ReserveProofUpdated:
	  - name: root
	    type: Hash256
	  - name: timestamp
	    type: Integer

Snapshot notification carries identifier of the new snapshot. Paused and
Unpaused notifications carry the PAUSER account. RoleGranted and RoleRevoked
notifications carry role, account and the ADMIN that changed membership.
*/
package eurium
