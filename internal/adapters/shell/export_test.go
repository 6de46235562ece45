package shell

// MergeEnvironment exposes mergeEnvironment for tests.
var MergeEnvironment = mergeEnvironment
