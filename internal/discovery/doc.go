// Package discovery finds git working directories beneath scan roots while
// filtering out dependency-sandbox and toolchain-cache subtrees.
package discovery
