// Package reactive provides the state cells behind withhover composites.
//
// A Signal holds a value and notifies subscribed Listeners when a write
// changes it. Subscriptions are explicit: a composite subscribes itself to
// its own hover signal when it is created and is marked dirty on every
// transition. Owner scopes tie signal lifetimes to the composite instance.
package reactive
