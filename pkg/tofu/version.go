package tofu

// DefaultVersion is the OpenTofu release downloaded and driven by this package.
// Upgrades are deliberate: bump only after validating the Azure provider
// templates against the new version.
const DefaultVersion = "1.8.3"
