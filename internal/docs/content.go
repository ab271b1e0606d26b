package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with contty",
		Content: topicQuickstart,
	},
	{
		Name:    "markers",
		Title:   "Block Markers",
		Summary: "Manual and automatic blocks inside the Caddyfile",
		Content: topicMarkers,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "contty.yaml schema, flags, and environment variables",
		Content: topicConfig,
	},
	{
		Name:    "sync",
		Title:   "Sync Model",
		Summary: "What sync rewrites, what it keeps, and output order",
		Content: topicSync,
	},
}

const topicQuickstart = `Quick Start
===========

1. Create a site list:

    contty init

   This writes contty.yaml with one example site.

2. Point contty at your Caddyfile, either with 'caddyfile:' in
   contty.yaml, the --caddyfile flag, or CADDYFILE_LOCATION.

3. Preview the result without writing:

    contty sync --dry-run

4. Apply it:

    contty sync

Single sites can be managed without the YAML file:

    contty add --hostname app.example.com --service app --port 3000 --email ops@example.com
    contty remove app.example.com
    contty list
`

const topicMarkers = `Block Markers
=============

Every line of the Caddyfile belongs to one of three kinds of content.

Unmanaged lines
    Anything outside a marker block. Kept as written, except that runs of
    blank lines collapse into one.

Manual blocks
    # CONTTY STARTBLOCK MANUAL
    ...any text, kept verbatim...
    # CONTTY ENDBLOCK

Automatic blocks
    # CONTTY STARTBLOCK AUTOMATIC {"hostname": "app.example.com", "email": "ops@example.com", "service": "app", "port": "3000"}
    https://app.example.com {
        header -Server
        proxy / app:3000 {
            websocket
            transparent
        }
        tls ops@example.com
    }
    # CONTTY ENDBLOCK

    The JSON on the start line is the only input. The body is regenerated
    on every write, so edits to it are lost. All four keys are required;
    port may be a string or a number.

Errors
    A line starting with "# CONTTY" that is not a start marker, an
    automatic marker with bad JSON, or a block with no ENDBLOCK stops
    contty before anything is written. 'contty check' reports the line.
`

const topicConfig = `Configuration Reference
=======================

contty.yaml:

    caddyfile: /caddy/Caddyfile     # default /caddy/Caddyfile
    email: ops@example.com          # default contact for every site
    sites:
      - hostname: app.example.com   # required, unique
        service: app                # required, backend host name
        port: 3000                  # required, 1-65535
        email: app@example.com      # optional, overrides the default

Global flags (each has an environment variable):

    --config      CONTTY_CONFIG        path to contty.yaml (default contty.yaml)
    --caddyfile   CADDYFILE_LOCATION   overrides 'caddyfile:'
    --log-level   CONTTY_LOG_LEVEL     debug, info, warn, error (default warn)
    --log-format  CONTTY_LOG_FORMAT    text or json (default text)

Logs go to stderr. Command output goes to stdout.
`

const topicSync = `Sync Model
==========

'contty sync' makes the automatic blocks of the Caddyfile exactly the
sites in contty.yaml:

  - sites missing from the file are added
  - sites whose parameters changed are regenerated
  - automatic blocks for hostnames no longer listed are removed
  - manual blocks and unmanaged lines are never touched

Output order is fixed: unmanaged lines first, then manual blocks in their
original order, then automatic blocks in contty.yaml order. Content that
was interleaved in the original file is regrouped.

The file is replaced atomically: contty writes a temporary file next to
the Caddyfile, syncs it to disk and renames it over the original. If the
rendered file is identical to the current one nothing is written.
`
