// Package config provides configuration loading for the weft CLI.
//
// Configuration is layered: built-in defaults, then the YAML file
// (weft.yaml by default, optional), then WEFT_* environment variables,
// then Validate.
//
// # Configuration File Structure
//
//	log:
//	  level: debug        # debug, info, warn, error
//	  format: json        # text, json
//	runtime:
//	  paint: true         # false runs effects from microtasks
//	  frame_interval: 16ms
//	  max_context_depth: 150
//	metrics:
//	  namespace: weft
//	  addr: ":9090"
//	inspector:
//	  addr: "localhost:7070"
//	snapshot:
//	  out: "s3://bucket/snapshots/demo.html"
//	  s3:
//	    region: eu-west-1
//	    endpoint: "http://localhost:9000"
//	    path_style: true
//
// # Environment
//
// Every key has an environment variable: WEFT_ plus the upper-cased path,
// e.g. WEFT_LOG_LEVEL, WEFT_RUNTIME_FRAME_INTERVAL, WEFT_SNAPSHOT_S3_REGION.
//
// # Usage
//
//	cfg, err := config.Load("weft.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Inspector:", cfg.Inspector.Addr)
package config
