// Package parcel contains the Parcel aggregate root and its PackagingLine
// entity. A parcel is one client order tracked through the fulfillment
// pipeline: the aggregate owns the stage machine (delegating graph checks to
// the pipeline package), the reminder bookkeeping for postponed parcels, and
// the scan-verification lines that gate dispatch.
//
// All stage changes go through the aggregate's methods; callers never mutate
// parcel state directly. The command layer executes each mutation as one
// atomic read-modify-write keyed by parcel id, so two concurrent transitions
// on the same parcel serialize and the loser observes the winner's new state.
package parcel
