// Package ioreg implements the I/O role registry (§4.7): a name → pin
// resolution layer over packed DI/DO bit banks and AI/AO polynomial
// scaling, so the rest of the system addresses peripherals by role
// ("EStop", "LimitMin(3)") instead of raw bus indices.
package ioreg
