package tablestorm

// Version is the tablestorm release version.
const Version = "0.1.0"
