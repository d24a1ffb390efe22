// Package physics holds the two-layer ocean energy balance model: its
// physical constants, the initial temperature profiles, and the assembly of
// the per-step linear system.
//
// The surface layer gains absorbed sunlight a(x)*S(x), loses outgoing
// longwave radiation A + B*T, diffuses heat meridionally, and exchanges heat
// with the deep layer through the flux Fb. The deep layer only diffuses and
// exchanges heat with the surface:
//
//	Cw  dT/dt  = a(x)S(x) - (A + B T) + F - Ls T + Fb
//	Cwd dTd/dt = -Ld Td - Fb
//
// Fb depends on whether the surface is ice-covered (T <= Tf). Ice-covered
// ocean sits at the freezing point and exchanges heat with coefficient KvI;
// open water exchanges heat with coefficient KvW at its own temperature.
//
// # Time stepping
//
// Diffusion, outgoing radiation and the exchange terms are treated
// implicitly. Only the ice/open-water mask is taken from the previous step,
// which keeps each step linear:
//
//	asm := physics.NewAssembler(g, physics.DefaultConstants(), coeffs, dt)
//	asm.Assemble(x, forcing, sys, fb)
//	err := solver.Solve(sys, next.T, next.Td)
package physics
