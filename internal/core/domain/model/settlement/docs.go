// Package settlement contains the Record aggregate: the cash-reconciliation
// tracker for a delivered, cash-collected parcel. A record is created once per
// qualifying parcel, carries immutable snapshots of the collected cash and the
// driver's commission, and walks a strictly forward-only status machine
// (InTransit, ToSettle, PendingApproval, Settled).
//
// Records are mutated only by the settlement command handlers and persist
// after the parcel itself is logically closed, forming the audit trail for
// cash handled by each driver.
package settlement
