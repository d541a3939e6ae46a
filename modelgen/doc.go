/*
Package modelgen generates Django model code and data fixtures from a
register's resolved schema.

The generated module contains a model class named after the register, a
manager able to reload the register's records, and a field declaration per
register field:

	from django.db import models

	from openregister_client.registers import Register


	class TerritoryManager(models.Manager):
	    def get_by_natural_key(self, key):
	        return self.get(key=key)
	    ...


	class Territory(models.Model):
	    key = models.CharField(primary_key=True, max_length=255)
	    official_name = models.CharField(max_length=255, blank=True, null=True)
	    ...

Register datatypes map onto Django model fields conservatively: strings,
curies and item hashes become CharFields, text becomes a TextField, and
multi-valued fields become ListFields regardless of datatype. Register
fields are always discovered as optional, so every generated field carries
null=True.

WriteFixtures serialises a register's records in Django's fixture format so
a generated model can be seeded without hitting the live service.
*/
package modelgen
