/*
main.go

Copyright © 2025 Code Monkey Cybersecurity
Contact: git@cybermonkey.net.au

This file is part of Lethe.

This software is dual-licensed under the Do No Harm License
and the GNU Affero General Public License v3 (AGPL-3.0-or-later).
You may use, modify, and distribute it under the terms of either license.

See LICENSE.agpl and LICENSE.dnh for full details.
*/
package main

import (
	"github.com/awnumar/memguard"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/lethe/cmd"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/telemetry"
)

func main() {
	logger.InitializeWithFallback()
	log := logger.L()
	if log == nil {
		panic("❌ logger.L() returned nil — logger not initialized")
	}
	log.Info("✅ Logger is alive before CLI runs")

	// Wipe every guarded allocation on the way out, whichever path the
	// process takes.
	defer memguard.Purge()

	if err := telemetry.Init(shared.LetheID); err != nil {
		log.Warn("Telemetry init failed", zap.Error(err))
	}

	cmd.Execute()
}
