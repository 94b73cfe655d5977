/*
Treasury contract keeps NEP-17 assets of the Eurium issuer.

Any NEP-17 transfer to the contract is accepted as a deposit and grows the
tracked balance of the transferred asset. WITHDRAWER accounts send tracked
funds out within a rolling daily withdrawal limit shared by all assets and
counted in their base units. Base units are not normalized by decimals, so
with the default limit of 1000 GAS (10^11 units) only 10^-7 EUI (18
decimals) may be withdrawn per day; withdrawing EUI through the regular
path requires raising the limit. ADMIN changes the limit and may use the
emergency withdrawal path which is not limited; EmergencyWithdrawal
notifications are expected to be alerted on by monitoring.

GAS is the native asset. Methods taking an asset accept the zero hash as an
alias of the GAS contract hash.

# Contract notifications

	Deposit:
	  - name: asset
	    type: Hash160
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer
	Withdrawal:
	  - name: asset
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	EmergencyWithdrawal:
	  - name: asset
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	DailyLimitChanged:
	  - name: oldLimit
	    type: Integer
	  - name: newLimit
	    type: Integer
*/
package treasury
