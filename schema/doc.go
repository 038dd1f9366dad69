// Package schema declares named, typed field sets for game object
// types and composes them across explicit inheritance chains.
//
// A Schema lists the fields declared directly on one struct type. A
// Chain records a type's inheritance path, base-most schema first,
// built explicitly with Root and Extend rather than discovered by
// reflection. Bind resolves a chain against a concrete
// type into a View, the ordered union of every field in the chain,
// which the objmap package walks to serialize instances.
//
// Schemas, chains, and views are built during package initialization
// and are immutable afterwards, so concurrent reads need no locking.
// Deserializing into the same instance from several goroutines is not
// supported; callers synchronize per instance.
package schema
