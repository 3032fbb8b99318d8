// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package balancer splits selected players into skill-balanced teams.

# Algorithm

Given N players, a team count T and a capacity C:

	fullTeams = N / C
	remainder = N % C
	teams     = min(fullTeams + 1, T) if remainder > 0
	          = min(fullTeams, T)     otherwise

Players are sorted by skill, strongest first (stable, so equal ratings
keep their input order). Each player then joins the open team with the
lowest running skill sum; ties go to the lowest team index.

Every team holds C players except a trailing partial team, which holds
the remainder. When N exceeds T*C the surplus is left unassigned:

	res := balancer.Distribute(players, 2, 3)
	res.Teams    // at most 2 teams of 3
	res.Unplaced // everyone else, strongest first

Balance returns only the teams and is a pure function of its inputs.
*/
package balancer
