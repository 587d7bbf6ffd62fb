package product

func validate(p Product) error {
	switch {
	case p.Name == "":
		return ErrEmptyName
	case p.SellerID == "":
		return ErrEmptySeller
	case p.Price < 0:
		return ErrInvalidPrice
	case p.Stock < 0:
		return ErrInvalidStock
	case p.Rating < 0 || p.Rating > 5:
		return ErrInvalidRating
	case !p.Status.Valid():
		return ErrInvalidStatus
	}
	return nil
}
