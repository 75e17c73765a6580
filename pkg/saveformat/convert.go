package saveformat

import "github.com/somalattice/lattice/pkg/cell"

func toCellRecord(c cell.Cell) cellRecord {
	return cellRecord{
		Type: uint8(c.Type), R: c.R, Sc: c.Sc,
		E: c.E, D: c.D, C: c.C, L: c.L, M: c.M, A: c.A,
		P: c.P, Ref: c.Ref, ECost: c.ECost, H: c.H,
		G: c.G, W: c.W, Alive: c.Alive,
	}
}

func fromCellRecord(cr cellRecord) cell.Cell {
	return cell.Cell{
		Type: cell.Type(cr.Type), R: cr.R, Sc: cr.Sc,
		E: cr.E, D: cr.D, C: cr.C, L: cr.L, M: cr.M, A: cr.A,
		P: cr.P, Ref: cr.Ref, ECost: cr.ECost, H: cr.H,
		G: cr.G, W: cr.W, Alive: cr.Alive,
	}
}
