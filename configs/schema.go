package configs

// Schema closes the set of keys accepted in config files.
const Schema = `
tick_interval?: string
active_delay?: string
hide_breakpoints?: bool
listen_addr?: string
snapshot_db?: string
proxy_addr?: string
log_level?: string
log_format?: "text" | "json"
`
