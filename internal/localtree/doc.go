// Package localtree materializes remote secret hierarchies as local
// JSON file trees.
//
// The mapping is deterministic: leaf path a/b/c becomes
// <root>/a/b/c.json, directory nodes map 1:1 onto directories. Both the
// working tree and the transient mirror used during sync are Trees;
// whichever root a file is materialized under exclusively owns it.
//
// Files hold the secret's data payload only, pretty-printed with stable
// key order, so identical payloads always produce identical bytes and
// the reconciliation diff never sees formatting noise.
package localtree
