// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

/*
Package supervisor runs the server's long-lived services under a suture v4
supervisor tree.

The tree has two layers so a failure in one does not restart the other:

	tablematch (root)
	├── data-layer   dataset warm-up and source file watching
	└── api-layer    HTTP server

Supervisor events are logged through sutureslog using the zerolog-backed
slog adapter from the logging package:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewDatasetService(store, cfg.Data.Watch, paths...))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)

A service that returns an error is restarted; once FailureThreshold failures
accumulate (decaying over FailureDecay seconds) the supervisor backs off for
FailureBackoff before trying again.
*/
package supervisor
