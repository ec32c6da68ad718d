// Package config loads withhover.yaml.
//
// Values not present in the file keep their defaults from New. Durations
// use Go syntax:
//
//	server:
//	  address: ":8080"
//	  read_timeout: 60s
//	session:
//	  max_event_queue: 256
//	  idle_timeout: 5m
//	  heartbeat_interval: 30s
//	log:
//	  level: debug
//	  format: json
//	page:
//	  title: Hover demo
//	  texts: [hello, world]
//	export:
//	  bucket: my-snapshots
//	  prefix: withhover/
package config
