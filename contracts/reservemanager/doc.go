/*
Reserve manager contract is a mint authorization gateway of the Eurium token.

The contract keeps an append-only registry of collateral custodians and
mints tokens on the Eurium ledger on behalf of MANAGER accounts. Every mint
carries a unique authorization identifier (e.g. hash of the custodian
confirmation) which can be consumed only once, and the volume minted through
the gateway is capped by a rolling daily limit. The gateway must hold MINTER
role of the ledger. A failed ledger mint fails the whole invocation, so
neither the daily counter nor the authorization identifier is consumed.

# Contract notifications

	CustodianAdded:
	  - name: index
	    type: Integer
	  - name: name
	    type: String
	  - name: address
	    type: Hash160
	CustodianStatusUpdated:
	  - name: index
	    type: Integer
	  - name: active
	    type: Boolean
	AuthorizedMint:
	  - name: authorizationId
	    type: Hash256
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	DailyLimitChanged:
	  - name: oldLimit
	    type: Integer
	  - name: newLimit
	    type: Integer

RoleGranted and RoleRevoked notifications are the same as in the Eurium
contract.
*/
package reservemanager
