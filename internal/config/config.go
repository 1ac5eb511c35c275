// Package config loads the simulation's tunable parameters from YAML,
// grounded in voxelcraft.ai's internal/sim/multiworld/config.go
// (defaults-then-override-then-Validate shape) using
// gopkg.in/yaml.v3. Field names trace back to
// original_source/params.h's knobs (SPEC_FULL §4.4/§4.7).
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Params is the full set of tunables a run can override. Fields carry
// both yaml and json tags (json for ValidateSchema's round-trip
// through the embedded JSON Schema).
type Params struct {
	Scheduler SchedulerParams `yaml:"scheduler" json:"scheduler"`
	Assets    AssetsParams    `yaml:"assets" json:"assets"`
	Sim       SimParams       `yaml:"sim" json:"sim"`
}

type SchedulerParams struct {
	ClusterCount               int     `yaml:"cluster_count" json:"cluster_count"`
	TTLProfitWeight            float64 `yaml:"ttl_profit_weight" json:"ttl_profit_weight"`
	TTLBound                   int     `yaml:"ttl_bound" json:"ttl_bound"`
	PartitionScheduling        bool    `yaml:"partition_scheduling" json:"partition_scheduling"`
	DynamicPartitionScheduling bool    `yaml:"dynamic_partition_scheduling" json:"dynamic_partition_scheduling"`
	RobotReleaseBound          float64 `yaml:"robot_release_bound" json:"robot_release_bound"`
	DynamicSchedulingInterval  int     `yaml:"dynamic_scheduling_interval" json:"dynamic_scheduling_interval"`
	ABLEDepartScale            float64 `yaml:"able_depart_scale" json:"able_depart_scale"`
	MaxShipsPerBerth           int     `yaml:"max_ships_per_berth" json:"max_ships_per_berth"`
	ShipWaitTimeLimit          int     `yaml:"ship_wait_time_limit" json:"ship_wait_time_limit"`
}

type AssetsParams struct {
	MaxRobotNum               int  `yaml:"max_robot_num" json:"max_robot_num"`
	MaxShipNum                int  `yaml:"max_ship_num" json:"max_ship_num"`
	StartNum                  int  `yaml:"start_num" json:"start_num"`
	TimeToBuyShip             int  `yaml:"time_to_buy_ship" json:"time_to_buy_ship"`
	RobotFirst                bool `yaml:"robot_first" json:"robot_first"`
	CentralizedTransportation bool `yaml:"centralized_transportation" json:"centralized_transportation"`
}

type SimParams struct {
	TotalFrames     int `yaml:"total_frames" json:"total_frames"`
	NodeBudget      int `yaml:"node_budget" json:"node_budget"`
	ReplayBufSize   int `yaml:"replay_buffer_size" json:"replay_buffer_size"`
	MaxResolveIters int `yaml:"max_resolve_iterations" json:"max_resolve_iterations"`

	// The judge-protocol constants spec §6 lists as "Constants
	// (tunable)": fixed for a run, but not hardcoded, since the judge
	// can vary them between matches.
	MapRows     int `yaml:"map_rows" json:"map_rows"`
	MapCols     int `yaml:"map_cols" json:"map_cols"`
	RobotCount  int `yaml:"robot_count" json:"robot_count"`
	BerthCount  int `yaml:"berth_count" json:"berth_count"`
	ShipCount   int `yaml:"ship_count" json:"ship_count"`
}

// Defaults mirrors original_source/params.h's literal values.
func Defaults() Params {
	return Params{
		Scheduler: SchedulerParams{
			ClusterCount:               4,
			TTLProfitWeight:            1.5,
			TTLBound:                   500,
			PartitionScheduling:        true,
			DynamicPartitionScheduling: true,
			RobotReleaseBound:          0.5,
			DynamicSchedulingInterval:  200,
			ABLEDepartScale:            0.15,
			MaxShipsPerBerth:           1,
			ShipWaitTimeLimit:          5,
		},
		Assets: AssetsParams{
			MaxRobotNum:               12,
			MaxShipNum:                3,
			StartNum:                  1,
			TimeToBuyShip:             50,
			RobotFirst:                true,
			CentralizedTransportation: true,
		},
		Sim: SimParams{
			TotalFrames:     15000,
			NodeBudget:      20000,
			ReplayBufSize:   256,
			MaxResolveIters: 2,
			MapRows:         200,
			MapCols:         200,
			RobotCount:      10,
			BerthCount:      10,
			ShipCount:       5,
		},
	}
}

// Load reads and validates params from path, falling back to Defaults
// when path is empty.
func Load(path string) (Params, error) {
	p := Defaults()
	if strings.TrimSpace(path) == "" {
		return p, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("config: %w", err)
	}
	if err := ValidateSchema(p); err != nil {
		return p, err
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("config: %w", err)
	}
	return p, nil
}

// Validate checks the cross-field invariants a malformed YAML file
// could violate.
func (p Params) Validate() error {
	if p.Scheduler.ClusterCount <= 0 {
		return fmt.Errorf("scheduler.cluster_count must be > 0")
	}
	if p.Scheduler.DynamicSchedulingInterval <= 0 {
		return fmt.Errorf("scheduler.dynamic_scheduling_interval must be > 0")
	}
	if p.Scheduler.ABLEDepartScale < 0 || p.Scheduler.ABLEDepartScale > 1 {
		return fmt.Errorf("scheduler.able_depart_scale must be in [0, 1]")
	}
	if p.Assets.MaxRobotNum < 0 || p.Assets.MaxShipNum < 0 {
		return fmt.Errorf("assets.max_robot_num / max_ship_num must be >= 0")
	}
	if p.Sim.TotalFrames <= 0 {
		return fmt.Errorf("sim.total_frames must be > 0")
	}
	if p.Sim.NodeBudget <= 0 {
		return fmt.Errorf("sim.node_budget must be > 0")
	}
	return nil
}
