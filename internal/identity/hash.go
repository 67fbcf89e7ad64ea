// Package identity derives stable, content-addressed ids for every entity
// the pipeline produces. Every id is a hash of a canonical signature string;
// callers are responsible for sorting any unordered component before joining
// it, so a signature string is always deterministic for a given input set.
package identity

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

const (
	nodeHashLen    = 12
	superNodeHash  = 12
	superEdgeHash  = 12
	versionHashLen = 16
)

// Sorted returns a new, sorted copy of ss. Use it when building a signature
// from an unordered set (member ids, port names, ...).
func Sorted(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.Strings(out)
	return out
}

// Signature joins already-canonicalized parts with "|". Callers sort any
// unordered part themselves (via Sorted) before calling this.
func Signature(parts ...string) string {
	return strings.Join(parts, "|")
}

func sha1Hex(s string, n int) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:n]
}

func sha256Hex(s string, n int) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:n]
}

// NodeID derives a stable node id from "cell_type | module | sorted(port:direction:width)".
// Form: N_{entity_class}_{hash12}.
func NodeID(entityClass, cellType, module string, ports []string) string {
	sig := Signature(cellType, module, Signature(Sorted(ports)...))
	return fmt.Sprintf("N_%s_%s", entityClass, sha1Hex(sig, nodeHashLen))
}

// EdgeID derives a stable edge id from
// "src_node | dst_node | relation | flow | signal_name[+bit_range]".
// Form: E_{relation}_{hash12}.
func EdgeID(relation, src, dst, flow, signalName, bitRange string) string {
	sig := Signature(src, dst, relation, flow, signalName, bitRange)
	return fmt.Sprintf("E_%s_%s", relation, sha1Hex(sig, nodeHashLen))
}

// SuperNodeID derives a stable super-node id from
// "view | super_class | policy_version | sorted(member_node_ids)".
// Form: SN_{view}_{super_class}_{hash12}.
func SuperNodeID(view, superClass, policyVersion string, memberNodeIDs []string) string {
	sig := Signature(view, superClass, policyVersion, Signature(Sorted(memberNodeIDs)...))
	return fmt.Sprintf("SN_%s_%s_%s", view, superClass, sha1Hex(sig, superNodeHash))
}

// SuperEdgeID derives a stable super-edge id from
// "src_sn | dst_sn | policy_version | sorted(member_edge_ids)".
// Form: SE_{hash12}.
func SuperEdgeID(srcSN, dstSN, policyVersion string, memberEdgeIDs []string) string {
	sig := Signature(srcSN, dstSN, policyVersion, Signature(Sorted(memberEdgeIDs)...))
	return fmt.Sprintf("SE_%s", sha1Hex(sig, superEdgeHash))
}

// FileHash returns the first 16 hex chars of SHA-256 over file bytes, used
// as the per-file component of a version hash (spec §6).
func FileHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:versionHashLen]
}

// CategoryHash combines per-file hashes (in declared order) into a single
// category hash (rtl_hash / constraint_hash / timing_hash).
func CategoryHash(fileHashesInOrder []string) string {
	joined := strings.Join(fileHashesInOrder, "|")
	return sha256Hex(joined, versionHashLen)
}
