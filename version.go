package vigil

// Version is the release of the vigil module.
const Version = "0.3.0"
