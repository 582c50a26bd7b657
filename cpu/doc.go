// Package cpu implements the processor and assembler for the minicpu system.
//
// The CPU consists of an accumulator (acc), an instruction/stack pointer
// slot (isp), nine 16-bit general-purpose registers (r0-r8), and a flat
// memory of 16-bit cells reached through indirect operands. Programs are
// executed in order, one instruction per tick; add and sub fault instead
// of wrapping, and indirect reads outside of memory fault instead of
// panicking.
//
// The assembler reads a line-oriented assembly language: one instruction,
// label, or comment per line, with equates and compile-time expression
// evaluation.
package cpu
